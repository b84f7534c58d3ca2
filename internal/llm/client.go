// Package llm adapts text-generation services behind a single prompt-in,
// text-out port.
package llm

import "context"

// Client completes a prompt with generated text
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
