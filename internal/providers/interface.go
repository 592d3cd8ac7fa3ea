package providers

import (
	"context"
)

// Generator defines the interface to the upstream text generation service
type Generator interface {
	// Complete performs a non-streaming generation and returns the full text
	Complete(ctx context.Context, req GenerationRequest) (string, error)

	// StreamComplete performs a streaming generation. The returned channel
	// carries zero or more text fragments followed by exactly one terminal
	// fragment (done or error); it is closed after the terminal fragment.
	StreamComplete(ctx context.Context, req GenerationRequest) (<-chan Fragment, error)
}

// GenerationRequest represents one call to the generator
type GenerationRequest struct {
	SystemPrompt string   `json:"system_prompt"`
	UserPrompt   string   `json:"user_prompt"`
	Model        string   `json:"model,omitempty"`
	Temperature  *float32 `json:"temperature,omitempty"`
	MaxTokens    *int     `json:"max_tokens,omitempty"`
}

// Fragment is one incremental piece of a streaming generation.
// Exactly one of the terminal markers is set on the last fragment:
// FinishReason on success, Error on failure.
type Fragment struct {
	Delta        string `json:"delta,omitempty"`
	FinishReason string `json:"finish_reason,omitempty"`
	Error        string `json:"error,omitempty"`
}
