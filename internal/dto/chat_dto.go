package dto

import (
	"time"

	"github.com/google/uuid"
)

type QueryRequest struct {
	Question    string `json:"question" validate:"required"`
	SessionName string `json:"session_name" validate:"required"`
}

type SessionResponse struct {
	SessionId   uuid.UUID `json:"session_id"`
	SessionName string    `json:"session_name"`
}

type ChatMessageResponse struct {
	Id        int64                  `json:"id"`
	Type      string                 `json:"type"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

type DeleteSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Message   string    `json:"message"`
}
