package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeDocumentIngested     = "document.ingested"
	TypeDocumentIngestFailed = "document.ingest_failed"
)

// DocumentIngested is published once a document's chunks have been embedded
// and the document is searchable.
type DocumentIngested struct {
	DocumentId uuid.UUID
	Name       string
	Chunks     int
	OccurredAt time.Time
}

func (e DocumentIngested) EventType() string {
	return TypeDocumentIngested
}

func (e DocumentIngested) Payload() map[string]interface{} {
	return map[string]interface{}{
		"document_id": e.DocumentId.String(),
		"name":        e.Name,
		"chunks":      e.Chunks,
	}
}

func (e DocumentIngested) Timestamp() time.Time {
	return e.OccurredAt
}

type DocumentIngestFailed struct {
	DocumentId uuid.UUID
	Name       string
	Reason     string
	OccurredAt time.Time
}

func (e DocumentIngestFailed) EventType() string {
	return TypeDocumentIngestFailed
}

func (e DocumentIngestFailed) Payload() map[string]interface{} {
	return map[string]interface{}{
		"document_id": e.DocumentId.String(),
		"name":        e.Name,
		"reason":      e.Reason,
	}
}

func (e DocumentIngestFailed) Timestamp() time.Time {
	return e.OccurredAt
}
