package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgSessionRepository implements SessionRepository
var _ interfaces.SessionRepository = (*pgSessionRepository)(nil)

const (
	sessionColumns = `id, user_id, title, status, metadata, total_tokens, model_used, created_at, updated_at`

	getSessionQuery = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	getActiveSessionByUserQuery = `SELECT ` + sessionColumns + ` FROM sessions
        WHERE user_id = $1 AND status = 'active' ORDER BY updated_at DESC LIMIT 1`

	listSessionsByUserQuery = `SELECT ` + sessionColumns + ` FROM sessions
        WHERE user_id = $1 ORDER BY updated_at DESC OFFSET $2 LIMIT $3`

	createSessionQuery = `
        INSERT INTO sessions (user_id, title, metadata, model_used)
        VALUES ($1, $2, $3, $4)
        RETURNING id, status, total_tokens, created_at, updated_at`

	setSessionStatusQuery = `UPDATE sessions SET status = $1 WHERE id = $2`

	// Номер назначается внутри INSERT, поэтому между чтением максимума и
	// вставкой нет окна: конкурирующая вставка упрется в уникальный индекс
	// и будет повторена.
	appendMessageQuery = `
        INSERT INTO session_messages (session_id, role, content, tool_name, tool_input, tool_output, tokens_used, metadata, parent_message_id, sequence_number)
        SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE(MAX(sequence_number), 0) + 1
        FROM session_messages WHERE session_id = $1
        RETURNING id, sequence_number, created_at`

	accumulateSessionTokensQuery = `UPDATE sessions SET total_tokens = total_tokens + $1 WHERE id = $2`

	touchSessionQuery = `UPDATE sessions SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`

	getMessagesQuery = `SELECT id, session_id, role, content, tool_name, tool_input, tool_output,
        tokens_used, metadata, parent_message_id, sequence_number, created_at
        FROM session_messages WHERE session_id = $1 ORDER BY sequence_number`

	registerToolQuery = `
        INSERT INTO tools (name, description, version)
        VALUES ($1, $2, $3)
        RETURNING id, is_active, created_at`

	getToolByNameQuery = `SELECT id, name, description, version, is_active, created_at FROM tools WHERE name = $1`

	recordToolUsageQuery = `
        INSERT INTO tool_usages (session_id, tool_id, message_id, execution_time_ms, success, error_message)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	getToolUsageQuery = `SELECT id, session_id, tool_id, message_id, execution_time_ms, success, error_message, created_at
        FROM tool_usages WHERE session_id = $1 ORDER BY created_at`

	getSessionStatsQuery = `SELECT
        s.id AS session_id,
        (SELECT COUNT(*) FROM session_messages m WHERE m.session_id = s.id) AS message_count,
        (SELECT COUNT(*) FROM tool_usages u WHERE u.session_id = s.id) AS tool_usage_count,
        s.total_tokens
        FROM sessions s WHERE s.id = $1`

	archiveClosedSessionsQuery = `UPDATE sessions SET status = 'archived'
        WHERE status = 'closed' AND updated_at < $1`
)

// appendMessageMaxRetries ограничивает повторы вставки при гонке за номер.
const appendMessageMaxRetries = 3

type pgSessionRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgSessionRepository создает PostgreSQL-реализацию SessionRepository.
func NewPgSessionRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.SessionRepository {
	return &pgSessionRepository{
		db:     db,
		logger: logger.Named("PgSessionRepo"),
	}
}

func (r *pgSessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	err := r.db.QueryRow(ctx, createSessionQuery,
		session.UserID, session.Title, session.Metadata, session.ModelUsed,
	).Scan(&session.ID, &session.Status, &session.TotalTokens, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create session in postgres", zap.Error(err), zap.Int64("userID", session.UserID))
		return fmt.Errorf("failed to create session in postgres: %w", err)
	}
	r.logger.Info("Session created successfully", zap.String("sessionID", session.ID.String()), zap.Int64("userID", session.UserID))
	return nil
}

func (r *pgSessionRepository) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := pgxscan.Get(ctx, r.db, &session, getSessionQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Session not found by ID", zap.String("sessionID", id.String()))
			return nil, models.ErrSessionNotFound
		}
		r.logger.Error("Failed to get session from postgres", zap.Error(err), zap.String("sessionID", id.String()))
		return nil, fmt.Errorf("failed to get session from postgres: %w", err)
	}
	return &session, nil
}

func (r *pgSessionRepository) GetActiveSessionByUser(ctx context.Context, userID int64) (*models.Session, error) {
	var session models.Session
	err := pgxscan.Get(ctx, r.db, &session, getActiveSessionByUserQuery, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("No active session for user", zap.Int64("userID", userID))
			return nil, models.ErrSessionNotFound
		}
		r.logger.Error("Failed to get active session from postgres", zap.Error(err), zap.Int64("userID", userID))
		return nil, fmt.Errorf("failed to get active session from postgres: %w", err)
	}
	return &session, nil
}

func (r *pgSessionRepository) ListSessionsByUser(ctx context.Context, userID int64, skip, limit int) ([]models.Session, error) {
	sessions := []models.Session{}
	err := pgxscan.Select(ctx, r.db, &sessions, listSessionsByUserQuery, userID, skip, limit)
	if err != nil {
		r.logger.Error("Failed to list sessions from postgres", zap.Error(err), zap.Int64("userID", userID))
		return nil, fmt.Errorf("failed to list sessions from postgres: %w", err)
	}
	return sessions, nil
}

func (r *pgSessionRepository) SetSessionStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error {
	cmdTag, err := r.db.Exec(ctx, setSessionStatusQuery, status, id)
	if err != nil {
		r.logger.Error("Failed to set session status in postgres", zap.Error(err), zap.String("sessionID", id.String()))
		return fmt.Errorf("failed to set session status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to set status of non-existent session", zap.String("sessionID", id.String()))
		return models.ErrSessionNotFound
	}
	r.logger.Info("Session status updated", zap.String("sessionID", id.String()), zap.String("status", string(status)))
	return nil
}

// AppendMessage вставляет сообщение со следующим номером в рамках сессии.
// Номер вычисляется внутри самого INSERT; при гонке двух вставок проигравшая
// нарушает уникальный индекс (session_id, sequence_number) и повторяется.
// Счетчик токенов сессии обновляется в той же транзакции.
func (r *pgSessionRepository) AppendMessage(ctx context.Context, msg *models.SessionMessage) error {
	var lastErr error
	for attempt := 1; attempt <= appendMessageMaxRetries; attempt++ {
		err := r.appendMessageOnce(ctx, msg)
		if err == nil {
			return nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Debug("Sequence number collision, retrying append",
				zap.String("sessionID", msg.SessionID.String()), zap.Int("attempt", attempt))
			lastErr = err
			continue
		}
		return err
	}
	r.logger.Error("Failed to append session message after retries",
		zap.String("sessionID", msg.SessionID.String()), zap.Error(lastErr))
	return fmt.Errorf("failed to append session message after %d attempts: %w", appendMessageMaxRetries, lastErr)
}

func (r *pgSessionRepository) appendMessageOnce(ctx context.Context, msg *models.SessionMessage) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, appendMessageQuery,
		msg.SessionID, msg.Role, msg.Content, msg.ToolName, msg.ToolInput, msg.ToolOutput,
		msg.TokensUsed, msg.Metadata, msg.ParentMessageID,
	).Scan(&msg.ID, &msg.SequenceNumber, &msg.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return models.ErrSessionNotFound
		}
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return err // гонка за номер, вызывающий код повторит
		}
		r.logger.Error("Failed to insert session message", zap.Error(err), zap.String("sessionID", msg.SessionID.String()))
		return fmt.Errorf("failed to insert session message: %w", err)
	}

	if msg.TokensUsed != nil && *msg.TokensUsed > 0 {
		if _, err := tx.Exec(ctx, accumulateSessionTokensQuery, *msg.TokensUsed, msg.SessionID); err != nil {
			r.logger.Error("Failed to accumulate session tokens", zap.Error(err), zap.String("sessionID", msg.SessionID.String()))
			return fmt.Errorf("failed to accumulate session tokens: %w", err)
		}
	} else {
		if _, err := tx.Exec(ctx, touchSessionQuery, msg.SessionID); err != nil {
			return fmt.Errorf("failed to touch session: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit append message transaction: %w", err)
	}
	return nil
}

func (r *pgSessionRepository) GetMessages(ctx context.Context, sessionID uuid.UUID) ([]models.SessionMessage, error) {
	messages := []models.SessionMessage{}
	err := pgxscan.Select(ctx, r.db, &messages, getMessagesQuery, sessionID)
	if err != nil {
		r.logger.Error("Failed to get session messages from postgres", zap.Error(err), zap.String("sessionID", sessionID.String()))
		return nil, fmt.Errorf("failed to get session messages from postgres: %w", err)
	}
	return messages, nil
}

func (r *pgSessionRepository) RegisterTool(ctx context.Context, tool *models.Tool) error {
	err := r.db.QueryRow(ctx, registerToolQuery, tool.Name, tool.Description, tool.Version).
		Scan(&tool.ID, &tool.IsActive, &tool.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "tools_name_key" {
			r.logger.Warn("Attempted to register duplicate tool", zap.String("name", tool.Name))
			return models.ErrToolAlreadyExists
		}
		r.logger.Error("Failed to register tool in postgres", zap.Error(err), zap.String("name", tool.Name))
		return fmt.Errorf("failed to register tool in postgres: %w", err)
	}
	r.logger.Info("Tool registered successfully", zap.String("toolID", tool.ID.String()), zap.String("name", tool.Name))
	return nil
}

func (r *pgSessionRepository) GetToolByName(ctx context.Context, name string) (*models.Tool, error) {
	var tool models.Tool
	err := pgxscan.Get(ctx, r.db, &tool, getToolByNameQuery, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Tool not found by name", zap.String("name", name))
			return nil, models.ErrToolNotFound
		}
		r.logger.Error("Failed to get tool by name from postgres", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to get tool by name from postgres: %w", err)
	}
	return &tool, nil
}

func (r *pgSessionRepository) RecordToolUsage(ctx context.Context, usage *models.ToolUsage) error {
	err := r.db.QueryRow(ctx, recordToolUsageQuery,
		usage.SessionID, usage.ToolID, usage.MessageID, usage.ExecutionTimeMs, usage.Success, usage.ErrorMessage,
	).Scan(&usage.ID, &usage.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to record tool usage in postgres", zap.Error(err), zap.String("sessionID", usage.SessionID.String()))
		return fmt.Errorf("failed to record tool usage in postgres: %w", err)
	}
	return nil
}

func (r *pgSessionRepository) GetToolUsage(ctx context.Context, sessionID uuid.UUID) ([]models.ToolUsage, error) {
	usages := []models.ToolUsage{}
	err := pgxscan.Select(ctx, r.db, &usages, getToolUsageQuery, sessionID)
	if err != nil {
		r.logger.Error("Failed to get tool usage from postgres", zap.Error(err), zap.String("sessionID", sessionID.String()))
		return nil, fmt.Errorf("failed to get tool usage from postgres: %w", err)
	}
	return usages, nil
}

func (r *pgSessionRepository) GetSessionStats(ctx context.Context, sessionID uuid.UUID) (*models.SessionStats, error) {
	var stats models.SessionStats
	err := pgxscan.Get(ctx, r.db, &stats, getSessionStatsQuery, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Session not found for stats", zap.String("sessionID", sessionID.String()))
			return nil, models.ErrSessionNotFound
		}
		r.logger.Error("Failed to get session stats from postgres", zap.Error(err), zap.String("sessionID", sessionID.String()))
		return nil, fmt.Errorf("failed to get session stats from postgres: %w", err)
	}
	return &stats, nil
}

// ArchiveSessionsClosedBefore переводит закрытые и давно не обновлявшиеся
// сессии в статус archived. Возвращает количество заархивированных сессий.
func (r *pgSessionRepository) ArchiveSessionsClosedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, archiveClosedSessionsQuery, cutoff)
	if err != nil {
		r.logger.Error("Failed to archive closed sessions", zap.Error(err))
		return 0, fmt.Errorf("failed to archive closed sessions: %w", err)
	}
	archived := cmdTag.RowsAffected()
	if archived > 0 {
		r.logger.Info("Archived closed sessions", zap.Int64("count", archived))
	}
	return archived, nil
}
