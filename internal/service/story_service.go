package service

import (
	"context"

	"genstory-server/internal/agent"
	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"go.uber.org/zap"
)

// StoryService управляет историями и генерацией их планов.
type StoryService struct {
	stories    interfaces.StoryRepository
	characters interfaces.CharacterRepository
	agent      *agent.Agent
	sessions   *SessionService
	logger     *zap.Logger
}

// NewStoryService создает сервис историй.
func NewStoryService(stories interfaces.StoryRepository, characters interfaces.CharacterRepository, ag *agent.Agent, sessions *SessionService, logger *zap.Logger) *StoryService {
	return &StoryService{
		stories:    stories,
		characters: characters,
		agent:      ag,
		sessions:   sessions,
		logger:     logger.Named("StoryService"),
	}
}

func (s *StoryService) Create(ctx context.Context, create *models.StoryCreate) (*models.Story, error) {
	story := &models.Story{
		Title:           create.Title,
		CreatorUserID:   create.CreatorUserID,
		Author:          create.Author,
		Genre:           create.Genre,
		Language:        create.Language,
		Summary:         create.Summary,
		Outline:         create.Outline,
		SSF:             create.SSF,
		VersionText:     create.VersionText,
		StoryTemplateID: create.StoryTemplateID,
	}
	if err := s.stories.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *StoryService) Get(ctx context.Context, id int64) (*models.Story, error) {
	return s.stories.GetByID(ctx, id)
}

func (s *StoryService) List(ctx context.Context, skip, limit int) ([]models.Story, error) {
	return s.stories.List(ctx, skip, limit)
}

func (s *StoryService) Update(ctx context.Context, id int64, upd *models.StoryUpdate) (*models.Story, error) {
	if err := s.stories.UpdateFields(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.stories.GetByID(ctx, id)
}

func (s *StoryService) Delete(ctx context.Context, id int64) error {
	return s.stories.Delete(ctx, id)
}

// GenerateOutline генерирует план истории. План возвращается вызывающему
// как есть и НЕ сохраняется: сохранение - явное действие пользователя
// через PUT /story/{id}.
func (s *StoryService) GenerateOutline(ctx context.Context, storyID int64) (*agent.GenerationResult, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	characters, err := s.characters.ListByStoryID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.GetOrCreateActive(ctx, story.CreatorUserID)
	if err != nil {
		return nil, err
	}

	result, err := s.agent.GenerateOutline(ctx, session.ID, story, characters)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Story outline generated",
		zap.Int64("storyID", storyID),
		zap.String("sessionID", session.ID.String()),
		zap.Bool("fallback", result.Fallback))
	return result, nil
}
