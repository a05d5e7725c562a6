package service

import (
	"context"

	"genstory-server/internal/agent"
	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"go.uber.org/zap"
)

// CharacterService управляет персонажами, их связями и генерацией профилей.
type CharacterService struct {
	characters interfaces.CharacterRepository
	stories    interfaces.StoryRepository
	agent      *agent.Agent
	sessions   *SessionService
	logger     *zap.Logger
}

// NewCharacterService создает сервис персонажей.
func NewCharacterService(characters interfaces.CharacterRepository, stories interfaces.StoryRepository, ag *agent.Agent, sessions *SessionService, logger *zap.Logger) *CharacterService {
	return &CharacterService{
		characters: characters,
		stories:    stories,
		agent:      ag,
		sessions:   sessions,
		logger:     logger.Named("CharacterService"),
	}
}

func (s *CharacterService) Create(ctx context.Context, create *models.CharacterCreate) (*models.Character, error) {
	// Персонаж всегда принадлежит существующей истории.
	if _, err := s.stories.GetByID(ctx, create.StoryID); err != nil {
		return nil, err
	}
	character := &models.Character{
		StoryID:     create.StoryID,
		Name:        create.Name,
		IsMain:      create.IsMain,
		Gender:      create.Gender,
		MBTI:        create.MBTI,
		Age:         create.Age,
		Description: create.Description,
		Appearance:  create.Appearance,
		Personality: create.Personality,
		Backstory:   create.Backstory,
		Arc:         create.Arc,
		Quirks:      create.Quirks,
	}
	if err := s.characters.Create(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

func (s *CharacterService) Get(ctx context.Context, id int64) (*models.Character, error) {
	return s.characters.GetByID(ctx, id)
}

func (s *CharacterService) List(ctx context.Context, skip, limit int) ([]models.Character, error) {
	return s.characters.List(ctx, skip, limit)
}

func (s *CharacterService) ListByStory(ctx context.Context, storyID int64) ([]models.Character, error) {
	return s.characters.ListByStoryID(ctx, storyID)
}

func (s *CharacterService) Update(ctx context.Context, id int64, upd *models.CharacterUpdate) (*models.Character, error) {
	if err := s.characters.UpdateFields(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.characters.GetByID(ctx, id)
}

func (s *CharacterService) Delete(ctx context.Context, id int64) error {
	return s.characters.Delete(ctx, id)
}

// LinkEvent привязывает персонажа к событию.
func (s *CharacterService) LinkEvent(ctx context.Context, link *models.CharacterEvent) error {
	if _, err := s.characters.GetByID(ctx, link.CharacterID); err != nil {
		return err
	}
	return s.characters.LinkEvent(ctx, link)
}

func (s *CharacterService) ListEventLinks(ctx context.Context, characterID int64) ([]models.CharacterEvent, error) {
	if _, err := s.characters.GetByID(ctx, characterID); err != nil {
		return nil, err
	}
	return s.characters.ListEventLinks(ctx, characterID)
}

// SetRelationship создает или обновляет связь между двумя персонажами.
func (s *CharacterService) SetRelationship(ctx context.Context, rel *models.CharacterRelationship) error {
	if _, err := s.characters.GetByID(ctx, rel.CharacterID); err != nil {
		return err
	}
	if _, err := s.characters.GetByID(ctx, rel.RelatedCharacterID); err != nil {
		return err
	}
	return s.characters.SetRelationship(ctx, rel)
}

func (s *CharacterService) ListRelationships(ctx context.Context, characterID int64) ([]models.CharacterRelationship, error) {
	if _, err := s.characters.GetByID(ctx, characterID); err != nil {
		return nil, err
	}
	return s.characters.ListRelationships(ctx, characterID)
}

// Generate генерирует профиль персонажа по запросу пользователя.
// Результат НЕ сохраняется: создание - отдельный явный вызов.
func (s *CharacterService) Generate(ctx context.Context, storyID int64, userPrompt string) (*agent.GenerationResult, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.GetOrCreateActive(ctx, story.CreatorUserID)
	if err != nil {
		return nil, err
	}

	result, err := s.agent.GenerateCharacter(ctx, session.ID, story, userPrompt)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Character generated",
		zap.Int64("storyID", storyID),
		zap.String("sessionID", session.ID.String()),
		zap.Bool("fallback", result.Fallback))
	return result, nil
}
