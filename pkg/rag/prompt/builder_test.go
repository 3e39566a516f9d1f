package prompt

import (
	"strings"
	"testing"

	"zeorag-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContextualize(t *testing.T) {
	b := NewBuilder()

	chatHistory := []llm.Message{
		{Role: "user", Content: "What is zeolite?"},
		{Role: "assistant", Content: "A microporous mineral."},
	}
	messages := b.BuildContextualize(chatHistory, "How is it synthesized?")

	require.Len(t, messages, 4)
	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "standalone question")
	assert.Equal(t, chatHistory[0], messages[1])
	assert.Equal(t, chatHistory[1], messages[2])
	assert.Equal(t, llm.Message{Role: "user", Content: "How is it synthesized?"}, messages[3])
}

func TestBuildAnswer(t *testing.T) {
	b := NewBuilder()

	chunks := []string{"Zeolites are aluminosilicates.", "Synthesis uses hydrothermal methods."}
	messages := b.BuildAnswer(chunks, nil, "How is it synthesized?")

	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	for _, chunk := range chunks {
		assert.Contains(t, messages[0].Content, chunk)
	}
	assert.Equal(t, "user", messages[1].Role)
}

func TestBuildAnswerEmptyContext(t *testing.T) {
	b := NewBuilder()

	messages := b.BuildAnswer(nil, nil, "Anything?")

	require.Len(t, messages, 2)
	// The template survives substitution even with no retrieved context.
	assert.True(t, strings.Contains(messages[0].Content, "Context:"))
	assert.False(t, strings.Contains(messages[0].Content, "%s"))
}
