package integration

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"

	"zeorag-be/internal/entity"
	"zeorag-be/internal/repository/unitofwork"
	"zeorag-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	factory, err := unitofwork.NewRepositoryFactory(gormDB)
	require.NoError(t, err)
	return factory
}

func cleanupSession(t *testing.T, factory unitofwork.RepositoryFactory, sessionId uuid.UUID) {
	t.Helper()
	uow := factory.NewUnitOfWork(context.Background())
	if err := uow.ChatHistoryRepository().DeleteBySessionId(context.Background(), sessionId); err != nil {
		t.Logf("cleanup failed for session %s: %v", sessionId, err)
	}
}

func TestChatHistoryAppendAndFetchOrder(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	sessionId := uuid.New()
	defer cleanupSession(t, factory, sessionId)

	uow := factory.NewUnitOfWork(ctx)
	messages := []entity.ChatMessage{
		entity.NewHumanMessage("What is zeolite?"),
		entity.NewAIMessage("A microporous mineral."),
	}
	require.NoError(t, uow.ChatHistoryRepository().Append(ctx, sessionId, "zeolite papers", messages))

	records, err := uow.ChatHistoryRepository().FindBySessionId(ctx, sessionId)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, entity.MessageTypeHuman, records[0].Message.Type)
	assert.Equal(t, "What is zeolite?", records[0].Message.Content)
	assert.Equal(t, entity.MessageTypeAI, records[1].Message.Type)
	assert.Equal(t, "A microporous mineral.", records[1].Message.Content)
	assert.Equal(t, "zeolite papers", records[0].SessionName)
	assert.Less(t, records[0].Id, records[1].Id)
}

func TestChatHistoryFetchEmptySession(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	uow := factory.NewUnitOfWork(ctx)
	records, err := uow.ChatHistoryRepository().FindBySessionId(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestChatHistoryDeleteIsNoOpForUnknownSession(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	uow := factory.NewUnitOfWork(ctx)
	err := uow.ChatHistoryRepository().DeleteBySessionId(ctx, uuid.New())
	assert.NoError(t, err)
}

func TestChatHistoryDeleteThenFetchIsEmpty(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	sessionId := uuid.New()
	uow := factory.NewUnitOfWork(ctx)

	require.NoError(t, uow.ChatHistoryRepository().Append(ctx, sessionId, "temp", []entity.ChatMessage{
		entity.NewHumanMessage("hello"),
	}))
	require.NoError(t, uow.ChatHistoryRepository().DeleteBySessionId(ctx, sessionId))

	records, err := uow.ChatHistoryRepository().FindBySessionId(ctx, sessionId)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestChatHistoryListDistinctSessions(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	sessionA := uuid.New()
	sessionB := uuid.New()
	defer cleanupSession(t, factory, sessionA)
	defer cleanupSession(t, factory, sessionB)

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.ChatHistoryRepository().Append(ctx, sessionA, "session a", []entity.ChatMessage{
		entity.NewHumanMessage("first"),
		entity.NewHumanMessage("second"),
	}))
	require.NoError(t, uow.ChatHistoryRepository().Append(ctx, sessionB, "session b", []entity.ChatMessage{
		entity.NewHumanMessage("third"),
	}))

	sessions, err := uow.ChatHistoryRepository().ListSessions(ctx)
	require.NoError(t, err)

	found := map[uuid.UUID]string{}
	for _, s := range sessions {
		found[s.SessionId] = s.SessionName
	}
	assert.Equal(t, "session a", found[sessionA])
	assert.Equal(t, "session b", found[sessionB])

	// Session A has two rows but must appear once.
	countA := 0
	for _, s := range sessions {
		if s.SessionId == sessionA {
			countA++
		}
	}
	assert.Equal(t, 1, countA)
}

func TestChatHistoryConcurrentSessionsDoNotInterleave(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()

	sessionA := uuid.New()
	sessionB := uuid.New()
	defer cleanupSession(t, factory, sessionA)
	defer cleanupSession(t, factory, sessionB)

	const rounds = 10
	var wg sync.WaitGroup
	appendAll := func(sessionId uuid.UUID, name string) {
		defer wg.Done()
		uow := factory.NewUnitOfWork(ctx)
		for i := 0; i < rounds; i++ {
			err := uow.ChatHistoryRepository().Append(ctx, sessionId, name, []entity.ChatMessage{
				entity.NewHumanMessage("question"),
				entity.NewAIMessage("answer"),
			})
			assert.NoError(t, err)
		}
	}

	wg.Add(2)
	go appendAll(sessionA, "concurrent a")
	go appendAll(sessionB, "concurrent b")
	wg.Wait()

	uow := factory.NewUnitOfWork(ctx)
	for _, sessionId := range []uuid.UUID{sessionA, sessionB} {
		records, err := uow.ChatHistoryRepository().FindBySessionId(ctx, sessionId)
		require.NoError(t, err)
		require.Len(t, records, rounds*2)

		// Each human/ai pair must land adjacent and in order.
		for i := 0; i < len(records); i += 2 {
			assert.Equal(t, entity.MessageTypeHuman, records[i].Message.Type)
			assert.Equal(t, entity.MessageTypeAI, records[i+1].Message.Type)
		}
	}
}
