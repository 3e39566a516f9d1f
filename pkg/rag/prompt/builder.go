package prompt

import (
	"fmt"
	"strings"

	"zeorag-be/internal/constant"
	"zeorag-be/pkg/llm"
)

// Builder assembles the two chat prompts of the pipeline: the history-aware
// reformulation prompt and the grounded answer prompt.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// BuildContextualize produces the prompt that rewrites a follow-up question
// into a standalone one: system instruction, then the chat history, then the
// latest user question.
func (b *Builder) BuildContextualize(chatHistory []llm.Message, question string) []llm.Message {
	messages := make([]llm.Message, 0, len(chatHistory)+2)
	messages = append(messages, llm.Message{Role: "system", Content: constant.ContextualizeSystemPrompt})
	messages = append(messages, chatHistory...)
	messages = append(messages, llm.Message{Role: "user", Content: question})
	return messages
}

// BuildAnswer produces the grounded answer prompt: system instruction with
// the retrieved context stuffed in, then the chat history, then the question.
func (b *Builder) BuildAnswer(contextChunks []string, chatHistory []llm.Message, question string) []llm.Message {
	system := fmt.Sprintf(constant.AnswerSystemPromptTemplate, strings.Join(contextChunks, "\n\n"))

	messages := make([]llm.Message, 0, len(chatHistory)+2)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	messages = append(messages, chatHistory...)
	messages = append(messages, llm.Message{Role: "user", Content: question})
	return messages
}
