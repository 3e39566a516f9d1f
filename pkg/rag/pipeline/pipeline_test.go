package pipeline

import (
	"context"
	"strings"
	"testing"

	"zeorag-be/internal/entity"
	"zeorag-be/internal/repository/contract"
	"zeorag-be/internal/repository/specification"
	"zeorag-be/pkg/llm"
	"zeorag-be/pkg/rag/retriever"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	chatCalls    [][]llm.Message
	chatResponse string
	streamTokens []string
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.chatCalls = append(f.chatCalls, history)
	return f.chatResponse, nil
}

func (f *fakeProvider) Stream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan llm.StreamChunk, error) {
	out := make(chan llm.StreamChunk, len(f.streamTokens))
	for _, tok := range f.streamTokens {
		out <- llm.StreamChunk{Content: tok}
	}
	close(out)
	return out, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type fakeEmbedder struct{}

func (fakeEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

type fakeEmbeddingRepo struct {
	chunks []string
}

func (r *fakeEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	return nil
}

func (r *fakeEmbeddingRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (r *fakeEmbeddingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error) {
	return nil, nil
}

func (r *fakeEmbeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *fakeEmbeddingRepo) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredChunk, error) {
	scored := make([]*contract.ScoredChunk, 0, len(r.chunks))
	for i, c := range r.chunks {
		scored = append(scored, &contract.ScoredChunk{
			Embedding:  &entity.DocumentEmbedding{Chunk: c, ChunkIndex: i},
			Similarity: 1.0 - float64(i)*0.1,
		})
	}
	return scored, nil
}

func newTestPipeline(provider llm.LLMProvider, chunks []string) *Pipeline {
	ret := retriever.NewRetriever(fakeEmbedder{}, &fakeEmbeddingRepo{chunks: chunks}, 4)
	return NewPipeline(provider, ret)
}

func TestReformulateSkipsEmptyHistory(t *testing.T) {
	provider := &fakeProvider{chatResponse: "should not be used"}
	p := newTestPipeline(provider, nil)

	standalone, err := p.Reformulate(context.Background(), nil, "What is zeolite?")
	require.NoError(t, err)
	assert.Equal(t, "What is zeolite?", standalone)
	assert.Empty(t, provider.chatCalls, "no model call without history")
}

func TestReformulateUsesHistory(t *testing.T) {
	provider := &fakeProvider{chatResponse: "How are zeolites synthesized?"}
	p := newTestPipeline(provider, nil)

	chatHistory := []llm.Message{
		{Role: "user", Content: "What is zeolite?"},
		{Role: "assistant", Content: "A microporous mineral."},
	}
	standalone, err := p.Reformulate(context.Background(), chatHistory, "How is it made?")
	require.NoError(t, err)
	assert.Equal(t, "How are zeolites synthesized?", standalone)

	require.Len(t, provider.chatCalls, 1)
	sent := provider.chatCalls[0]
	assert.Equal(t, "system", sent[0].Role)
	assert.Equal(t, "How is it made?", sent[len(sent)-1].Content)
}

func TestReformulateFallsBackOnBlankRewrite(t *testing.T) {
	provider := &fakeProvider{chatResponse: "   "}
	p := newTestPipeline(provider, nil)

	standalone, err := p.Reformulate(context.Background(), []llm.Message{
		{Role: "user", Content: "hi"},
	}, "How is it made?")
	require.NoError(t, err)
	assert.Equal(t, "How is it made?", standalone)
}

func TestAnswerStreamsWithRetrievedContext(t *testing.T) {
	provider := &fakeProvider{
		chatResponse: "standalone question",
		streamTokens: []string{"Hydrothermal ", "synthesis."},
	}
	p := newTestPipeline(provider, []string{"Zeolites form hydrothermally.", "Framework types vary."})

	chatHistory := []llm.Message{
		{Role: "user", Content: "What is zeolite?"},
		{Role: "assistant", Content: "A microporous mineral."},
	}
	stream, err := p.Answer(context.Background(), chatHistory, "How is it made?")
	require.NoError(t, err)

	var answer strings.Builder
	for chunk := range stream {
		require.NoError(t, chunk.Err)
		answer.WriteString(chunk.Content)
	}
	assert.Equal(t, "Hydrothermal synthesis.", answer.String())

	// One reformulation call went through; the answer itself was streamed.
	require.Len(t, provider.chatCalls, 1)
}
