package history

import (
	"zeorag-be/internal/entity"
	"zeorag-be/pkg/llm"
)

// ToLLMMessages converts a stored transcript into provider-agnostic chat
// messages. Human turns become "user", AI turns "assistant"; system messages
// pass through.
func ToLLMMessages(records []*entity.ChatRecord) []llm.Message {
	messages := make([]llm.Message, 0, len(records))
	for _, record := range records {
		role := "user"
		switch record.Message.Type {
		case entity.MessageTypeAI:
			role = "assistant"
		case entity.MessageTypeSystem:
			role = "system"
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: record.Message.Content,
		})
	}
	return messages
}

// Truncate keeps the most recent n messages of a history.
func Truncate(messages []llm.Message, n int) []llm.Message {
	if n <= 0 || len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}
