package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrNoJSON means the model answered without any JSON object
var ErrNoJSON = errors.New("no JSON object in model response")

// ExtractJSON locates the JSON object in a model response and returns it
// repaired into valid JSON. Fenced ```json blocks win over bare fences,
// which win over the outermost braces.
func ExtractJSON(text string) (string, error) {
	candidate := text

	switch {
	case strings.Contains(text, "```json"):
		candidate = between(text, "```json", "```")
	case strings.Contains(text, "```"):
		candidate = between(text, "```", "```")
	}

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end <= start {
		return "", ErrNoJSON
	}
	candidate = candidate[start : end+1]

	if json.Valid([]byte(candidate)) {
		return candidate, nil
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return "", fmt.Errorf("failed to repair JSON: %w", err)
	}
	return repaired, nil
}

// DecodeJSON extracts the JSON object from text and unmarshals it into v
func DecodeJSON(text string, v any) error {
	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode model JSON: %w", err)
	}
	return nil
}

func between(s, open, close string) string {
	i := strings.Index(s, open)
	if i == -1 {
		return s
	}
	rest := s[i+len(open):]
	if j := strings.Index(rest, close); j != -1 {
		return rest[:j]
	}
	return rest
}
