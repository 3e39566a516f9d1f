package retriever

import (
	"context"
	"fmt"

	"zeorag-be/internal/repository/contract"
	"zeorag-be/pkg/embedding"
)

// Retriever turns a standalone question into the context passages that ground
// the answer: embed the question, then nearest-neighbour search over the
// ingested chunks.
type Retriever struct {
	embedder embedding.EmbeddingProvider
	repo     contract.DocumentEmbeddingRepository
	topK     int
}

func NewRetriever(embedder embedding.EmbeddingProvider, repo contract.DocumentEmbeddingRepository, topK int) *Retriever {
	if topK <= 0 {
		topK = 4
	}
	return &Retriever{
		embedder: embedder,
		repo:     repo,
		topK:     topK,
	}
}

// Retrieve returns the chunk contents most similar to the question, best
// match first. An empty result is not an error.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]string, error) {
	vector, err := r.embedder.Generate(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	scored, err := r.repo.SearchSimilar(ctx, vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search embeddings: %w", err)
	}

	chunks := make([]string, 0, len(scored))
	for _, s := range scored {
		chunks = append(chunks, s.Embedding.Chunk)
	}
	return chunks, nil
}
