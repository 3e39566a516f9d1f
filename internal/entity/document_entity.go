package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id          uuid.UUID
	Name        string
	Bucket      string
	ObjectKey   string
	Size        int64
	ContentType string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type DocumentEmbedding struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkIndex int
	Chunk      string
	Embedding  []float32
	CreatedAt  time.Time
}
