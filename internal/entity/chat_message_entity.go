package entity

import (
	"time"

	"github.com/google/uuid"
)

// MessageType tags a chat message with its speaker role.
type MessageType string

const (
	MessageTypeHuman  MessageType = "human"
	MessageTypeAI     MessageType = "ai"
	MessageTypeSystem MessageType = "system"
)

// ChatMessage is a role-tagged message payload. Metadata carries any extra
// fields found in the stored JSON besides the content itself.
type ChatMessage struct {
	Type     MessageType
	Content  string
	Metadata map[string]interface{}
}

func NewHumanMessage(content string) ChatMessage {
	return ChatMessage{Type: MessageTypeHuman, Content: content}
}

func NewAIMessage(content string) ChatMessage {
	return ChatMessage{Type: MessageTypeAI, Content: content}
}

func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{Type: MessageTypeSystem, Content: content}
}

// ChatRecord is one durable row of a session transcript. Records are
// immutable once written; a session is only ever appended to or deleted
// wholesale.
type ChatRecord struct {
	Id          int64
	SessionId   uuid.UUID
	SessionName string
	Message     ChatMessage
	Timestamp   time.Time
}

// SessionInfo identifies one distinct session that has stored messages.
// Because the session name is denormalized onto every row, the same
// session id may appear more than once with different names.
type SessionInfo struct {
	SessionId   uuid.UUID
	SessionName string
}
