package mapper

import (
	"encoding/json"
	"fmt"

	"zeorag-be/internal/entity"
	"zeorag-be/internal/model"

	"github.com/google/uuid"
)

// messageDocument is the wire/storage shape of one message:
// {"type": "human"|"ai"|"system", "data": {"content": "...", ...}}.
type messageDocument struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

type ChatHistoryMapper struct{}

func NewChatHistoryMapper() *ChatHistoryMapper {
	return &ChatHistoryMapper{}
}

// MarshalMessage serializes a ChatMessage into its JSONB document form.
func (m *ChatHistoryMapper) MarshalMessage(msg entity.ChatMessage) ([]byte, error) {
	data := make(map[string]interface{}, len(msg.Metadata)+1)
	for k, v := range msg.Metadata {
		data[k] = v
	}
	data["content"] = msg.Content

	return json.Marshal(messageDocument{
		Type: string(msg.Type),
		Data: data,
	})
}

// UnmarshalMessage restores a ChatMessage from its JSONB document form. Any
// data fields besides "content" are kept in Metadata.
func (m *ChatHistoryMapper) UnmarshalMessage(raw []byte) (entity.ChatMessage, error) {
	var doc messageDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return entity.ChatMessage{}, fmt.Errorf("decode message payload: %w", err)
	}

	msg := entity.ChatMessage{Type: entity.MessageType(doc.Type)}
	for k, v := range doc.Data {
		if k == "content" {
			if s, ok := v.(string); ok {
				msg.Content = s
			}
			continue
		}
		if msg.Metadata == nil {
			msg.Metadata = make(map[string]interface{})
		}
		msg.Metadata[k] = v
	}
	return msg, nil
}

func (m *ChatHistoryMapper) ToModel(sessionId uuid.UUID, sessionName string, msg entity.ChatMessage) (*model.ChatHistory, error) {
	raw, err := m.MarshalMessage(msg)
	if err != nil {
		return nil, err
	}
	return &model.ChatHistory{
		SessionId:   sessionId,
		SessionName: sessionName,
		Message:     raw,
	}, nil
}

func (m *ChatHistoryMapper) ToEntity(row *model.ChatHistory) (*entity.ChatRecord, error) {
	if row == nil {
		return nil, nil
	}
	msg, err := m.UnmarshalMessage(row.Message)
	if err != nil {
		return nil, err
	}
	return &entity.ChatRecord{
		Id:          row.Id,
		SessionId:   row.SessionId,
		SessionName: row.SessionName,
		Message:     msg,
		Timestamp:   row.Timestamp,
	}, nil
}
