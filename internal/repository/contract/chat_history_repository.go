package contract

import (
	"context"
	"errors"

	"zeorag-be/internal/entity"
	"zeorag-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ErrNoWriteConnection is a configuration error: the repository was built
// without a write-capable database handle. Surfaced at construction time,
// never silently no-oped.
var ErrNoWriteConnection = errors.New("chat history store requires a write-capable database connection")

type ChatHistoryRepository interface {
	// Append serializes the messages and inserts them as a single atomic
	// batch; either every message in the batch becomes visible or none do.
	Append(ctx context.Context, sessionId uuid.UUID, sessionName string, messages []entity.ChatMessage) error

	// FindBySessionId returns the session transcript in insertion order.
	// A session with no rows yields an empty slice, not an error.
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatRecord, error)

	// DeleteBySessionId removes every row of the session. Deleting a
	// never-used session is a no-op.
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error

	// ListSessions returns the distinct (session_id, session_name) pairs
	// with at least one stored message. A session that was appended under
	// several names appears once per name.
	ListSessions(ctx context.Context) ([]*entity.SessionInfo, error)

	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
