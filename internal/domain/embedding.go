package domain

import "context"

// EmbeddingResult is the output of an embedding call with token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text into a fixed-dimension dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker is implemented by providers that can verify their availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
