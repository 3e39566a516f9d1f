package embedding

import "context"

// EmbeddingProvider defines the interface for generating text embeddings.
// Implementations return unit-length vectors so cosine distance in pgvector
// is meaningful without further normalization.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
