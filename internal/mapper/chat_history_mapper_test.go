package mapper

import (
	"encoding/json"
	"testing"

	"zeorag-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalMessageShape(t *testing.T) {
	m := NewChatHistoryMapper()

	raw, err := m.MarshalMessage(entity.NewHumanMessage("What is zeolite?"))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "human", doc["type"])
	data, ok := doc["data"].(map[string]interface{})
	require.True(t, ok, "data must be an object")
	assert.Equal(t, "What is zeolite?", data["content"])
}

func TestMarshalMessageKeepsMetadata(t *testing.T) {
	m := NewChatHistoryMapper()

	msg := entity.ChatMessage{
		Type:     entity.MessageTypeAI,
		Content:  "A microporous mineral.",
		Metadata: map[string]interface{}{"model": "gpt-4o"},
	}
	raw, err := m.MarshalMessage(msg)
	require.NoError(t, err)

	restored, err := m.UnmarshalMessage(raw)
	require.NoError(t, err)

	assert.Equal(t, entity.MessageTypeAI, restored.Type)
	assert.Equal(t, "A microporous mineral.", restored.Content)
	assert.Equal(t, "gpt-4o", restored.Metadata["model"])
	_, hasContentKey := restored.Metadata["content"]
	assert.False(t, hasContentKey, "content must not leak into metadata")
}

func TestUnmarshalMessageRoles(t *testing.T) {
	m := NewChatHistoryMapper()

	tests := []struct {
		name string
		raw  string
		want entity.MessageType
	}{
		{"human", `{"type":"human","data":{"content":"hi"}}`, entity.MessageTypeHuman},
		{"ai", `{"type":"ai","data":{"content":"hello"}}`, entity.MessageTypeAI},
		{"system", `{"type":"system","data":{"content":"be brief"}}`, entity.MessageTypeSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := m.UnmarshalMessage([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg.Type)
		})
	}
}

func TestUnmarshalMessageRejectsGarbage(t *testing.T) {
	m := NewChatHistoryMapper()

	_, err := m.UnmarshalMessage([]byte(`not json`))
	assert.Error(t, err)
}

func TestToEntityRoundTrip(t *testing.T) {
	m := NewChatHistoryMapper()
	sessionId := uuid.New()

	row, err := m.ToModel(sessionId, "zeolite papers", entity.NewHumanMessage("What is zeolite?"))
	require.NoError(t, err)
	assert.Equal(t, sessionId, row.SessionId)
	assert.Equal(t, "zeolite papers", row.SessionName)

	row.Id = 42
	record, err := m.ToEntity(row)
	require.NoError(t, err)
	assert.Equal(t, int64(42), record.Id)
	assert.Equal(t, sessionId, record.SessionId)
	assert.Equal(t, "zeolite papers", record.SessionName)
	assert.Equal(t, entity.MessageTypeHuman, record.Message.Type)
	assert.Equal(t, "What is zeolite?", record.Message.Content)
}
