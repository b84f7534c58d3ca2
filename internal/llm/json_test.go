package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answer struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

func TestDecodeJSON(t *testing.T) {
	cases := map[string]string{
		"fenced json": "Here you go:\n```json\n{\"summary\": \"calm\", \"recommendations\": [\"a\"]}\n```\nBye",
		"bare fence":  "```\n{\"summary\": \"calm\", \"recommendations\": [\"a\"]}\n```",
		"braces":      "Sure! {\"summary\": \"calm\", \"recommendations\": [\"a\"]} hope it helps",
		"trailing":    "{\"summary\": \"calm\", \"recommendations\": [\"a\",],}",
		"single":      "{'summary': 'calm', 'recommendations': ['a']}",
	}

	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			var got answer
			require.NoError(t, DecodeJSON(text, &got))
			assert.Equal(t, answer{Summary: "calm", Recommendations: []string{"a"}}, got)
		})
	}
}

func TestExtractJSONWithoutObject(t *testing.T) {
	_, err := ExtractJSON("I cannot help with that.")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestMockReplaysResponses(t *testing.T) {
	ctx := context.Background()
	m := NewMock("one", "two")

	got, err := m.Complete(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	got, err = m.Complete(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	_, err = m.Complete(ctx, "p3")
	assert.ErrorIs(t, err, ErrNoResponse)

	assert.Equal(t, []string{"p1", "p2", "p3"}, m.Prompts())
}
