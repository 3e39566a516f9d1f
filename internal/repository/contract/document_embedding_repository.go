package contract

import (
	"context"

	"zeorag-be/internal/entity"
	"zeorag-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredChunk wraps a DocumentEmbedding with its cosine similarity to the
// query vector (1.0 = identical).
type ScoredChunk struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64
}

type DocumentEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar returns the top-k nearest chunks by cosine distance,
	// restricted to documents whose ingestion has completed.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*ScoredChunk, error)
}
