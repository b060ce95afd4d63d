package domain

import "context"

// TextGenerator is the port to the external generative model. It takes a
// fully assembled prompt and returns the model's free-form text reply.
// Implementations live in internal/adapter/llm.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
