package llm

import (
	"context"
)

// Client is a text-in/text-out language model. Callers treat it as fallible
// and non-deterministic; structured replies are validated by the caller.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into fixed-dimension vectors. The model used at query
// time must be the one used at ingestion time or similarity scores are
// meaningless.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
