package service

import (
	"context"
	"fmt"

	"zeorag-be/internal/dto"
	"zeorag-be/internal/entity"
	"zeorag-be/internal/repository/memory"
	"zeorag-be/internal/repository/unitofwork"
	"zeorag-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// ResolveSessionID maps arbitrary human input to a session UUID. A string
// that already parses as a UUID is returned unchanged; anything else is
// hashed into the DNS namespace, so the same input always resolves to the
// same session.
func ResolveSessionID(s string) uuid.UUID {
	if id, err := uuid.Parse(s); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(s))
}

// IHistoryService defines the chat history service interface
type IHistoryService interface {
	GetSessionHistory(ctx context.Context, sessionKey string) ([]*dto.ChatMessageResponse, error)
	AppendMessages(ctx context.Context, sessionKey string, sessionName string, messages []entity.ChatMessage) error
	ListSessions(ctx context.Context) ([]*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionKey string) (*dto.DeleteSessionResponse, error)
}

type historyService struct {
	uowFactory   unitofwork.RepositoryFactory
	listingCache *memory.SessionListingCache
	log          logger.ILogger
}

func NewHistoryService(
	uowFactory unitofwork.RepositoryFactory,
	listingCache *memory.SessionListingCache,
	log logger.ILogger,
) IHistoryService {
	return &historyService{
		uowFactory:   uowFactory,
		listingCache: listingCache,
		log:          log,
	}
}

func (hs *historyService) GetSessionHistory(ctx context.Context, sessionKey string) ([]*dto.ChatMessageResponse, error) {
	sessionId := ResolveSessionID(sessionKey)
	uow := hs.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.ChatHistoryRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session history: %w", err)
	}

	response := make([]*dto.ChatMessageResponse, 0, len(records))
	for _, r := range records {
		response = append(response, &dto.ChatMessageResponse{
			Id:        r.Id,
			Type:      string(r.Message.Type),
			Content:   r.Message.Content,
			Metadata:  r.Message.Metadata,
			Timestamp: r.Timestamp,
		})
	}
	return response, nil
}

func (hs *historyService) AppendMessages(ctx context.Context, sessionKey string, sessionName string, messages []entity.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	sessionId := ResolveSessionID(sessionKey)
	uow := hs.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatHistoryRepository().Append(ctx, sessionId, sessionName, messages); err != nil {
		return fmt.Errorf("failed to append messages: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	hs.listingCache.Invalidate()
	return nil
}

func (hs *historyService) ListSessions(ctx context.Context) ([]*dto.SessionResponse, error) {
	var sessions []*entity.SessionInfo

	if cached, found := hs.listingCache.Get(); found {
		sessions = cached
	} else {
		uow := hs.uowFactory.NewUnitOfWork(ctx)
		fetched, err := uow.ChatHistoryRepository().ListSessions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		hs.listingCache.Set(fetched)
		sessions = fetched
	}

	response := make([]*dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, &dto.SessionResponse{
			SessionId:   s.SessionId,
			SessionName: s.SessionName,
		})
	}
	return response, nil
}

func (hs *historyService) DeleteSession(ctx context.Context, sessionKey string) (*dto.DeleteSessionResponse, error) {
	sessionId := ResolveSessionID(sessionKey)
	uow := hs.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatHistoryRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	hs.listingCache.Invalidate()
	hs.log.Info("chat_history", "session deleted", map[string]interface{}{
		"session_id": sessionId.String(),
	})

	return &dto.DeleteSessionResponse{
		SessionId: sessionId,
		Message:   "session history deleted",
	}, nil
}
