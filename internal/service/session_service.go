package service

import (
	"context"
	"errors"
	"time"

	"genstory-server/internal/agent"
	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure SessionService implements agent.Transcript
var _ agent.Transcript = (*SessionService)(nil)

// SessionService управляет аудит-сессиями генерации и их append-only логом.
// Чтение лога идет через кэш с коротким TTL; любая запись инвалидирует кэш,
// так что кэш никогда не отдает устаревший хвост дольше TTL.
type SessionService struct {
	repo   interfaces.SessionRepository
	cache  interfaces.SessionCache
	logger *zap.Logger
}

// NewSessionService создает сервис сессий.
func NewSessionService(repo interfaces.SessionRepository, cache interfaces.SessionCache, logger *zap.Logger) *SessionService {
	return &SessionService{
		repo:   repo,
		cache:  cache,
		logger: logger.Named("SessionService"),
	}
}

// GetOrCreateActive возвращает активную сессию пользователя,
// создавая новую при отсутствии.
func (s *SessionService) GetOrCreateActive(ctx context.Context, userID int64) (*models.Session, error) {
	session, err := s.repo.GetActiveSessionByUser(ctx, userID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, models.ErrSessionNotFound) {
		return nil, err
	}

	session = &models.Session{UserID: userID}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info("Created new active session", zap.String("sessionID", session.ID.String()), zap.Int64("userID", userID))
	return session, nil
}

func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return s.repo.GetSession(ctx, id)
}

func (s *SessionService) ListSessions(ctx context.Context, userID int64, skip, limit int) ([]models.Session, error) {
	return s.repo.ListSessionsByUser(ctx, userID, skip, limit)
}

// AppendMessage добавляет запись в лог сессии и инвалидирует кэш чтения.
// Сессия должна быть активной.
func (s *SessionService) AppendMessage(ctx context.Context, create *models.SessionMessageCreate) (*models.SessionMessage, error) {
	session, err := s.repo.GetSession(ctx, create.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusActive {
		s.logger.Debug("Append to non-active session rejected", zap.String("sessionID", create.SessionID.String()))
		return nil, models.ErrSessionClosed
	}

	msg := &models.SessionMessage{
		SessionID:       create.SessionID,
		Role:            create.Role,
		Content:         create.Content,
		ToolName:        create.ToolName,
		ToolInput:       create.ToolInput,
		ToolOutput:      create.ToolOutput,
		TokensUsed:      create.TokensUsed,
		Metadata:        create.Metadata,
		ParentMessageID: create.ParentMessageID,
	}
	if err := s.repo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, create.SessionID); err != nil {
		// Кэш не источник истины, ошибки инвалидации не фатальны.
		s.logger.Warn("Failed to invalidate session cache after append", zap.Error(err),
			zap.String("sessionID", create.SessionID.String()))
	}
	return msg, nil
}

// GetMessages возвращает лог сессии в порядке номеров, сперва из кэша.
func (s *SessionService) GetMessages(ctx context.Context, sessionID uuid.UUID) ([]models.SessionMessage, error) {
	if cached, ok, err := s.cache.GetMessages(ctx, sessionID); err == nil && ok {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("Session cache read failed, falling back to postgres", zap.Error(err),
			zap.String("sessionID", sessionID.String()))
	}

	if _, err := s.repo.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	messages, err := s.repo.GetMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetMessages(ctx, sessionID, messages); err != nil {
		s.logger.Warn("Failed to cache session messages", zap.Error(err), zap.String("sessionID", sessionID.String()))
	}
	return messages, nil
}

// CloseSession переводит сессию в статус closed и инвалидирует кэш.
func (s *SessionService) CloseSession(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repo.SetSessionStatus(ctx, sessionID, models.SessionStatusClosed); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, sessionID); err != nil {
		s.logger.Warn("Failed to invalidate session cache after close", zap.Error(err),
			zap.String("sessionID", sessionID.String()))
	}
	return nil
}

func (s *SessionService) RegisterTool(ctx context.Context, tool *models.Tool) error {
	return s.repo.RegisterTool(ctx, tool)
}

func (s *SessionService) GetToolByName(ctx context.Context, name string) (*models.Tool, error) {
	return s.repo.GetToolByName(ctx, name)
}

func (s *SessionService) RecordToolUsage(ctx context.Context, usage *models.ToolUsage) error {
	return s.repo.RecordToolUsage(ctx, usage)
}

func (s *SessionService) GetToolUsage(ctx context.Context, sessionID uuid.UUID) ([]models.ToolUsage, error) {
	if _, err := s.repo.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.repo.GetToolUsage(ctx, sessionID)
}

func (s *SessionService) GetSessionStats(ctx context.Context, sessionID uuid.UUID) (*models.SessionStats, error) {
	return s.repo.GetSessionStats(ctx, sessionID)
}

// ArchiveIdleSessions архивирует закрытые сессии, не обновлявшиеся
// дольше указанного срока.
func (s *SessionService) ArchiveIdleSessions(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.repo.ArchiveSessionsClosedBefore(ctx, time.Now().Add(-olderThan))
}

// LogUserMessage записывает исходящий запрос генерации в лог сессии.
func (s *SessionService) LogUserMessage(ctx context.Context, sessionID uuid.UUID, content string) error {
	_, err := s.AppendMessage(ctx, &models.SessionMessageCreate{
		SessionID: sessionID,
		Role:      models.RoleUser,
		Content:   content,
	})
	return err
}

// LogAgentMessage записывает ответ модели в лог сессии вместе с числом
// использованных токенов.
func (s *SessionService) LogAgentMessage(ctx context.Context, sessionID uuid.UUID, content string, tokensUsed *int) error {
	_, err := s.AppendMessage(ctx, &models.SessionMessageCreate{
		SessionID:  sessionID,
		Role:       models.RoleAgent,
		Content:    content,
		TokensUsed: tokensUsed,
	})
	return err
}
