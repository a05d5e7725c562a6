package service

import (
	"context"

	"genstory-server/internal/agent"
	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"go.uber.org/zap"
)

// StoryContentService управляет контентом разделов и его генерацией.
type StoryContentService struct {
	contents   interfaces.StoryContentRepository
	stories    interfaces.StoryRepository
	characters interfaces.CharacterRepository
	agent      *agent.Agent
	sessions   *SessionService
	logger     *zap.Logger
}

// NewStoryContentService создает сервис контента разделов.
func NewStoryContentService(contents interfaces.StoryContentRepository, stories interfaces.StoryRepository, characters interfaces.CharacterRepository, ag *agent.Agent, sessions *SessionService, logger *zap.Logger) *StoryContentService {
	return &StoryContentService{
		contents:   contents,
		stories:    stories,
		characters: characters,
		agent:      ag,
		sessions:   sessions,
		logger:     logger.Named("StoryContentService"),
	}
}

// Create сохраняет контент раздела. Репозиторий в той же транзакции
// проставляет ссылку в пункте плана с совпадающим заголовком.
func (s *StoryContentService) Create(ctx context.Context, create *models.StoryContentCreate) (*models.StoryContent, error) {
	content := &models.StoryContent{
		StoryID:      create.StoryID,
		OutlineTitle: create.OutlineTitle,
		Content:      create.Content,
	}
	if err := s.contents.Create(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *StoryContentService) Get(ctx context.Context, id int64) (*models.StoryContent, error) {
	return s.contents.GetByID(ctx, id)
}

func (s *StoryContentService) List(ctx context.Context, skip, limit int) ([]models.StoryContent, error) {
	return s.contents.List(ctx, skip, limit)
}

func (s *StoryContentService) ListByStory(ctx context.Context, storyID int64) ([]models.StoryContent, error) {
	if _, err := s.stories.GetByID(ctx, storyID); err != nil {
		return nil, err
	}
	return s.contents.ListByStoryID(ctx, storyID)
}

func (s *StoryContentService) Update(ctx context.Context, id int64, upd *models.StoryContentUpdate) (*models.StoryContent, error) {
	if err := s.contents.UpdateFields(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.contents.GetByID(ctx, id)
}

func (s *StoryContentService) Delete(ctx context.Context, id int64) error {
	return s.contents.Delete(ctx, id)
}

// Generate генерирует прозу для пункта плана и СОХРАНЯЕТ результат:
// в отличие от генерации плана и персонажа, этот вызов персистентный,
// он же проставляет обратную ссылку в плане истории.
func (s *StoryContentService) Generate(ctx context.Context, storyID int64, outlineTitle string) (*models.StoryContent, *agent.GenerationResult, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, nil, err
	}
	characters, err := s.characters.ListByStoryID(ctx, storyID)
	if err != nil {
		return nil, nil, err
	}
	session, err := s.sessions.GetOrCreateActive(ctx, story.CreatorUserID)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.agent.GenerateContent(ctx, session.ID, story, characters, outlineTitle)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.Create(ctx, result.Content)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Story content generated and persisted",
		zap.Int64("storyID", storyID),
		zap.Int64("contentID", content.ID),
		zap.String("outlineTitle", outlineTitle),
		zap.Bool("fallback", result.Fallback))
	return content, result, nil
}
