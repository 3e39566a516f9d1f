package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatHistory is one appended message row. The session name is stored
// denormalized on every row rather than in a sessions table, so listing
// distinct sessions de-duplicates over (session_id, session_name).
type ChatHistory struct {
	Id          int64          `gorm:"primaryKey;autoIncrement"`
	SessionId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	SessionName string         `gorm:"type:text"`
	Message     datatypes.JSON `gorm:"type:jsonb;not null"`
	Timestamp   time.Time      `gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (ChatHistory) TableName() string {
	return "chat_history"
}
