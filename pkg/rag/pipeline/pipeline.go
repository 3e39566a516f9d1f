package pipeline

import (
	"context"
	"strings"

	"zeorag-be/pkg/llm"
	"zeorag-be/pkg/rag/prompt"
	"zeorag-be/pkg/rag/retriever"
)

// Pipeline wires the three RAG stages together: history-aware question
// reformulation, similarity retrieval, and the streamed grounded answer.
type Pipeline struct {
	provider  llm.LLMProvider
	retriever *retriever.Retriever
	prompts   *prompt.Builder
}

func NewPipeline(provider llm.LLMProvider, ret *retriever.Retriever) *Pipeline {
	return &Pipeline{
		provider:  provider,
		retriever: ret,
		prompts:   prompt.NewBuilder(),
	}
}

// Reformulate rewrites the question into a standalone one using the chat
// history. With an empty history the question passes through untouched.
func (p *Pipeline) Reformulate(ctx context.Context, chatHistory []llm.Message, question string) (string, error) {
	if len(chatHistory) == 0 {
		return question, nil
	}

	messages := p.prompts.BuildContextualize(chatHistory, question)
	standalone, err := p.provider.Chat(ctx, messages, llm.WithTemperature(0))
	if err != nil {
		return "", err
	}

	standalone = strings.TrimSpace(standalone)
	if standalone == "" {
		return question, nil
	}
	return standalone, nil
}

// Answer runs the full pipeline and returns the streamed answer chunks. Each
// call performs its own retrieval; nothing is shared between invocations.
func (p *Pipeline) Answer(ctx context.Context, chatHistory []llm.Message, question string) (<-chan llm.StreamChunk, error) {
	standalone, err := p.Reformulate(ctx, chatHistory, question)
	if err != nil {
		return nil, err
	}

	contextChunks, err := p.retriever.Retrieve(ctx, standalone)
	if err != nil {
		return nil, err
	}

	messages := p.prompts.BuildAnswer(contextChunks, chatHistory, question)
	return p.provider.Stream(ctx, messages, llm.WithTemperature(0))
}
