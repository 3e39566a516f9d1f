package service

import (
	"context"
	"fmt"
	"strings"

	"zeorag-be/internal/dto"
	"zeorag-be/internal/entity"
	"zeorag-be/internal/pkg/logger"
	"zeorag-be/internal/repository/unitofwork"
	"zeorag-be/pkg/llm"
	"zeorag-be/pkg/rag/history"
	"zeorag-be/pkg/rag/pipeline"
)

const maxHistoryMessages = 20

// IRagService defines the question answering service interface
type IRagService interface {
	// Query answers the question over the ingested corpus and streams the
	// answer back. Once the stream is fully drained the human/AI message
	// pair is persisted to the session transcript.
	Query(ctx context.Context, request *dto.QueryRequest) (<-chan llm.StreamChunk, error)
}

type ragService struct {
	uowFactory     unitofwork.RepositoryFactory
	historyService IHistoryService
	pipeline       *pipeline.Pipeline
	log            logger.ILogger
}

func NewRagService(
	uowFactory unitofwork.RepositoryFactory,
	historyService IHistoryService,
	ragPipeline *pipeline.Pipeline,
	log logger.ILogger,
) IRagService {
	return &ragService{
		uowFactory:     uowFactory,
		historyService: historyService,
		pipeline:       ragPipeline,
		log:            log,
	}
}

func (rs *ragService) Query(ctx context.Context, request *dto.QueryRequest) (<-chan llm.StreamChunk, error) {
	sessionId := ResolveSessionID(request.SessionName)

	uow := rs.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.ChatHistoryRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}

	chatHistory := history.Truncate(history.ToLLMMessages(records), maxHistoryMessages)

	stream, err := rs.pipeline.Answer(ctx, chatHistory, request.Question)
	if err != nil {
		return nil, err
	}

	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)

		var answer strings.Builder
		streamErr := false
		for chunk := range stream {
			if chunk.Err != nil {
				streamErr = true
			} else {
				answer.WriteString(chunk.Content)
			}
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}

		if streamErr || answer.Len() == 0 {
			return
		}

		// The client may disconnect right after the last chunk; the
		// exchange is still persisted.
		persistCtx := context.WithoutCancel(ctx)
		messages := []entity.ChatMessage{
			entity.NewHumanMessage(request.Question),
			entity.NewAIMessage(answer.String()),
		}
		if err := rs.historyService.AppendMessages(persistCtx, request.SessionName, request.SessionName, messages); err != nil {
			rs.log.Error("rag", "failed to persist chat exchange", map[string]interface{}{
				"session_id": sessionId.String(),
				"error":      err.Error(),
			})
		}
	}()

	return out, nil
}
