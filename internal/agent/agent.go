package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"genstory-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResultKind определяет вариант результата генерации.
type ResultKind string

const (
	KindText      ResultKind = "text"
	KindOutline   ResultKind = "outline"
	KindContent   ResultKind = "content"
	KindCharacter ResultKind = "character"
)

// GenerationResult - результат одного вызова генерации. Заполнено ровно одно
// из полей Text/Outline/Content/Character в соответствии с Kind.
// Fallback выставлен, если ответ модели не удалось привести к целевой
// структуре и подставлена детерминированная заглушка.
type GenerationResult struct {
	Kind      ResultKind
	Text      string
	Outline   *models.StoryOutline
	Content   *models.StoryContentCreate
	Character *models.CharacterCreate
	Fallback  bool
	Usage     UsageInfo
}

// Transcript - приемник аудит-лога генерации. Каждый вызов агента
// добавляет в лог ровно два сообщения: запрос и ответ.
type Transcript interface {
	// LogUserMessage appends the outgoing request to the session log.
	LogUserMessage(ctx context.Context, sessionID uuid.UUID, content string) error

	// LogAgentMessage appends the model response to the session log together
	// with the used token count.
	LogAgentMessage(ctx context.Context, sessionID uuid.UUID, content string, tokensUsed *int) error
}

// Agent выполняет генерацию плана, прозы и персонажей через AI API,
// протоколируя каждый вызов в лог сессии.
type Agent struct {
	ai         AIClient
	transcript Transcript
	logger     *zap.Logger
}

// NewAgent создает агент генерации.
func NewAgent(ai AIClient, transcript Transcript, logger *zap.Logger) *Agent {
	return &Agent{
		ai:         ai,
		transcript: transcript,
		logger:     logger.Named("Agent"),
	}
}

// run отправляет запрос модели и протоколирует пару запрос/ответ.
// При транспортной ошибке ответное сообщение не протоколируется,
// ошибка возвращается вызывающему.
func (a *Agent) run(ctx context.Context, sessionID uuid.UUID, userID, instruction, userMessage string) (string, UsageInfo, error) {
	if err := a.transcript.LogUserMessage(ctx, sessionID, userMessage); err != nil {
		return "", UsageInfo{}, fmt.Errorf("failed to log user message: %w", err)
	}

	raw, usage, err := a.ai.GenerateText(ctx, userID, systemPrompt+"\n\n"+instruction, userMessage, GenerationParams{JSONResponse: true})
	if err != nil {
		return "", UsageInfo{}, err
	}

	var tokensUsed *int
	if usage.TotalTokens > 0 {
		tokensUsed = &usage.TotalTokens
	}
	if err := a.transcript.LogAgentMessage(ctx, sessionID, raw, tokensUsed); err != nil {
		return "", UsageInfo{}, fmt.Errorf("failed to log agent message: %w", err)
	}
	return raw, usage, nil
}

// GenerateOutline генерирует план истории. Результат не сохраняется.
func (a *Agent) GenerateOutline(ctx context.Context, sessionID uuid.UUID, story *models.Story, characters []models.Character) (*GenerationResult, error) {
	prompt := OutlinePrompt(
		story.Title,
		story.GenreOrUnknown(),
		summaryOrDefault(story.Summary),
		string(story.LanguageOrDefault()),
		charactersJSON(characters),
	)

	raw, usage, err := a.run(ctx, sessionID, formatUserID(story.CreatorUserID), outlineInstruction, prompt)
	if err != nil {
		return nil, err
	}

	result := &GenerationResult{Kind: KindOutline, Usage: usage}

	var outline models.StoryOutline
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &outline); err == nil && len(outline.ItemList) > 0 {
		result.Outline = &outline
		return result, nil
	}

	a.logger.Warn("Model response is not a valid outline, using fallback",
		zap.String("sessionID", sessionID.String()), zap.Int64("storyID", story.ID))
	result.Outline = fallbackOutline(story.Title)
	result.Fallback = true
	return result, nil
}

// GenerateContent генерирует прозу для одного пункта плана. Результат не сохраняется.
func (a *Agent) GenerateContent(ctx context.Context, sessionID uuid.UUID, story *models.Story, characters []models.Character, outlineTitle string) (*GenerationResult, error) {
	prompt := ContentPrompt(
		story.Title,
		story.GenreOrUnknown(),
		summaryOrDefault(story.Summary),
		outlineJSON(story.Outline),
		outlineTitle,
		string(story.LanguageOrDefault()),
		charactersJSON(characters),
	)

	raw, usage, err := a.run(ctx, sessionID, formatUserID(story.CreatorUserID), contentInstruction, prompt)
	if err != nil {
		return nil, err
	}

	result := &GenerationResult{Kind: KindContent, Usage: usage}

	var content models.StoryContentCreate
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &content); err == nil && content.Content != "" {
		// Идентификаторы всегда берутся из запроса, а не из ответа модели.
		content.StoryID = story.ID
		content.OutlineTitle = outlineTitle
		result.Content = &content
		return result, nil
	}

	a.logger.Warn("Model response is not valid story content, using fallback",
		zap.String("sessionID", sessionID.String()), zap.Int64("storyID", story.ID),
		zap.String("outlineTitle", outlineTitle))
	result.Content = &models.StoryContentCreate{
		StoryID:      story.ID,
		OutlineTitle: outlineTitle,
		Content:      fmt.Sprintf("Generated content for %s in %s", outlineTitle, story.Title),
	}
	result.Fallback = true
	return result, nil
}

// GenerateCharacter генерирует персонажа по запросу пользователя. Результат не сохраняется.
func (a *Agent) GenerateCharacter(ctx context.Context, sessionID uuid.UUID, story *models.Story, userPrompt string) (*GenerationResult, error) {
	prompt := CharacterPrompt(
		userPrompt,
		story.Title,
		story.GenreOrUnknown(),
		summaryOrDefault(story.Summary),
		string(story.LanguageOrDefault()),
	)

	raw, usage, err := a.run(ctx, sessionID, formatUserID(story.CreatorUserID), characterInstruction, prompt)
	if err != nil {
		return nil, err
	}

	result := &GenerationResult{Kind: KindCharacter, Usage: usage}

	var character models.CharacterCreate
	parseErr := json.Unmarshal([]byte(stripJSONFences(raw)), &character)
	if parseErr == nil && character.Name != "" {
		character.StoryID = story.ID
		result.Character = &character
		return result, nil
	}

	a.logger.Warn("Model response is not a valid character, using fallback",
		zap.String("sessionID", sessionID.String()), zap.Int64("storyID", story.ID))

	description := fmt.Sprintf("Character based on: %s", userPrompt)
	if parseErr != nil && strings.TrimSpace(raw) != "" {
		// Модель вернула обычный текст вместо структуры, сохраняем его как описание.
		description = strings.TrimSpace(raw)
	}
	result.Character = &models.CharacterCreate{
		StoryID:     story.ID,
		Name:        "Generated Character",
		Description: description,
		Personality: "Friendly and determined",
	}
	result.Fallback = true
	return result, nil
}

// fallbackOutline - детерминированная заглушка плана из трех глав.
func fallbackOutline(title string) *models.StoryOutline {
	items := make([]models.OutlineItem, 0, 3)
	for i := 1; i <= 3; i++ {
		items = append(items, models.OutlineItem{
			Title:   fmt.Sprintf("Chapter %d", i),
			Content: fmt.Sprintf("Generated content for chapter %d of %s", i, title),
		})
	}
	return &models.StoryOutline{ItemList: items}
}

// stripJSONFences убирает обрамление markdown-кодом вокруг JSON-ответа.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func summaryOrDefault(summary *string) string {
	if summary == nil || *summary == "" {
		return "No summary provided"
	}
	return *summary
}

func charactersJSON(characters []models.Character) string {
	if len(characters) == 0 {
		return "[]"
	}
	data, err := json.Marshal(characters)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func outlineJSON(outline *models.StoryOutline) string {
	if outline == nil {
		return "{}"
	}
	data, err := json.Marshal(outline)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}
