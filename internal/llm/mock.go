package llm

import (
	"context"
	"errors"
	"sync"
)

// ErrNoResponse is returned by Mock once its canned responses run out
var ErrNoResponse = errors.New("mock llm: no response available")

// Mock replays canned responses in order. It is safe for concurrent use.
type Mock struct {
	mu        sync.Mutex
	responses []string
	prompts   []string
}

// NewMock creates a Mock that answers with responses, one per call
func NewMock(responses ...string) *Mock {
	return &Mock{responses: responses}
}

// Complete returns the next canned response or ErrNoResponse
func (m *Mock) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)
	if len(m.responses) == 0 {
		return "", ErrNoResponse
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	return next, nil
}

// Prompts returns every prompt received so far
func (m *Mock) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
