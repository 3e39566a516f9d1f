package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentResponse struct {
	Id      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
}

type DocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishIngestDocumentMessage is the payload queued for the ingestion
// worker after an upload lands in the object store.
type PublishIngestDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

// IngestionEvent is the websocket payload broadcast when a document finishes
// or fails ingestion.
type IngestionEvent struct {
	DocumentId uuid.UUID `json:"document_id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Chunks     int       `json:"chunks,omitempty"`
	Error      string    `json:"error,omitempty"`
}
