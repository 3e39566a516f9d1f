package history

import (
	"testing"

	"zeorag-be/internal/entity"
	"zeorag-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLLMMessages(t *testing.T) {
	records := []*entity.ChatRecord{
		{Message: entity.NewSystemMessage("be brief")},
		{Message: entity.NewHumanMessage("What is zeolite?")},
		{Message: entity.NewAIMessage("A microporous mineral.")},
	}

	messages := ToLLMMessages(records)
	require.Len(t, messages, 3)
	assert.Equal(t, llm.Message{Role: "system", Content: "be brief"}, messages[0])
	assert.Equal(t, llm.Message{Role: "user", Content: "What is zeolite?"}, messages[1])
	assert.Equal(t, llm.Message{Role: "assistant", Content: "A microporous mineral."}, messages[2])
}

func TestTruncate(t *testing.T) {
	messages := []llm.Message{
		{Content: "1"}, {Content: "2"}, {Content: "3"}, {Content: "4"},
	}

	assert.Len(t, Truncate(messages, 2), 2)
	assert.Equal(t, "3", Truncate(messages, 2)[0].Content)
	assert.Equal(t, messages, Truncate(messages, 0))
	assert.Equal(t, messages, Truncate(messages, 10))
}
