package constant

const (
	DocumentStatusPending = "pending"
	DocumentStatusReady   = "ready"
	DocumentStatusFailed  = "failed"
)

const (
	// Chunking parameters for document ingestion. ~375 tokens per chunk
	// keeps every chunk well inside the embedding model's context window.
	DocumentChunkSize    = 1500
	DocumentChunkOverlap = 200
)
