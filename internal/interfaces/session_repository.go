package interfaces

import (
	"context"
	"time"

	"genstory-server/internal/models"

	"github.com/google/uuid"
)

// SessionRepository defines the interface for the append-only session log.
type SessionRepository interface {
	// CreateSession inserts a new session in the active status.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession returns models.ErrSessionNotFound if absent.
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)

	// GetActiveSessionByUser returns the most recently updated active session
	// of a user, or models.ErrSessionNotFound when there is none.
	GetActiveSessionByUser(ctx context.Context, userID int64) (*models.Session, error)

	// ListSessionsByUser retrieves user sessions ordered by updated_at DESC.
	ListSessionsByUser(ctx context.Context, userID int64, skip, limit int) ([]models.Session, error)

	// SetSessionStatus moves the session to a new status.
	SetSessionStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error

	// AppendMessage inserts a message with the next sequence number for the
	// session, assigned atomically inside the INSERT statement. Fills the
	// generated ID, sequence number and created_at, and accumulates the used
	// tokens into the session counter.
	AppendMessage(ctx context.Context, msg *models.SessionMessage) error

	// GetMessages returns session messages ordered by sequence_number ASC.
	GetMessages(ctx context.Context, sessionID uuid.UUID) ([]models.SessionMessage, error)

	// RegisterTool inserts a tool. Returns models.ErrToolAlreadyExists on a
	// duplicate name.
	RegisterTool(ctx context.Context, tool *models.Tool) error

	// GetToolByName returns models.ErrToolNotFound if absent.
	GetToolByName(ctx context.Context, name string) (*models.Tool, error)

	// RecordToolUsage inserts a tool usage record.
	RecordToolUsage(ctx context.Context, usage *models.ToolUsage) error

	// GetToolUsage returns usage records of a session ordered by created_at ASC.
	GetToolUsage(ctx context.Context, sessionID uuid.UUID) ([]models.ToolUsage, error)

	// GetSessionStats aggregates message and tool usage counts for a session.
	GetSessionStats(ctx context.Context, sessionID uuid.UUID) (*models.SessionStats, error)

	// ArchiveSessionsClosedBefore archives closed sessions not updated since
	// the cutoff. Returns the number of archived sessions.
	ArchiveSessionsClosedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionCache - необязательный кэш чтения поверх лога сессий с коротким TTL.
// Кэш никогда не является источником истины и инвалидируется при каждой записи.
type SessionCache interface {
	// GetMessages returns cached messages, or (nil, false, nil) on a miss.
	GetMessages(ctx context.Context, sessionID uuid.UUID) ([]models.SessionMessage, bool, error)

	// SetMessages stores messages under the session key with the cache TTL.
	SetMessages(ctx context.Context, sessionID uuid.UUID, msgs []models.SessionMessage) error

	// Invalidate drops all cached entries of a session.
	Invalidate(ctx context.Context, sessionID uuid.UUID) error
}
