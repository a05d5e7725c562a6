package agent_test

import (
	"context"
	"errors"
	"testing"

	"genstory-server/internal/agent"
	"genstory-server/internal/mocks"
	"genstory-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStory() *models.Story {
	genre := models.Genre("fantasy")
	summary := "A knight seeks a lost kingdom."
	return &models.Story{
		ID:            7,
		Title:         "T",
		CreatorUserID: 1,
		Genre:         &genre,
		Summary:       &summary,
	}
}

func TestAgent_GenerateOutline(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("Valid structured response is parsed", func(t *testing.T) {
		mockAI := mocks.NewMockAIClient(t)
		mockTranscript := mocks.NewMockTranscript(t)
		a := agent.NewAgent(mockAI, mockTranscript, zap.NewNop())

		raw := `{"itemList":[{"title":"The Road","content":"Departure."},{"title":"The Gate","content":"Arrival."}]}`
		mockTranscript.On("LogUserMessage", mock.Anything, sessionID, mock.AnythingOfType("string")).Return(nil).Once()
		mockAI.On("GenerateText", mock.Anything, "1", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("agent.GenerationParams")).
			Return(raw, agent.UsageInfo{TotalTokens: 42}, nil).Once()
		mockTranscript.On("LogAgentMessage", mock.Anything, sessionID, raw, mock.AnythingOfType("*int")).Return(nil).Once()

		result, err := a.GenerateOutline(ctx, sessionID, newTestStory(), nil)
		require.NoError(t, err)
		require.NotNil(t, result.Outline)
		assert.Equal(t, agent.KindOutline, result.Kind)
		assert.False(t, result.Fallback)
		assert.Len(t, result.Outline.ItemList, 2)
		assert.Equal(t, "The Road", result.Outline.ItemList[0].Title)
		assert.Equal(t, 42, result.Usage.TotalTokens)

		mockAI.AssertExpectations(t)
		mockTranscript.AssertExpectations(t)
	})

	t.Run("Plain text response falls back to three chapters", func(t *testing.T) {
		mockAI := mocks.NewMockAIClient(t)
		mockTranscript := mocks.NewMockTranscript(t)
		a := agent.NewAgent(mockAI, mockTranscript, zap.NewNop())

		mockTranscript.On("LogUserMessage", mock.Anything, sessionID, mock.AnythingOfType("string")).Return(nil).Twice()
		mockAI.On("GenerateText", mock.Anything, "1", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("agent.GenerationParams")).
			Return("Once upon a time there was a knight.", agent.UsageInfo{}, nil).Twice()
		mockTranscript.On("LogAgentMessage", mock.Anything, sessionID, mock.AnythingOfType("string"), mock.Anything).Return(nil).Twice()

		// Заглушка детерминирована: два вызова дают одинаковый результат.
		first, err := a.GenerateOutline(ctx, sessionID, newTestStory(), nil)
		require.NoError(t, err)
		second, err := a.GenerateOutline(ctx, sessionID, newTestStory(), nil)
		require.NoError(t, err)

		require.True(t, first.Fallback)
		require.Len(t, first.Outline.ItemList, 3)
		assert.Equal(t, "Chapter 1", first.Outline.ItemList[0].Title)
		assert.Equal(t, "Chapter 2", first.Outline.ItemList[1].Title)
		assert.Equal(t, "Chapter 3", first.Outline.ItemList[2].Title)
		assert.Equal(t, "Generated content for chapter 1 of T", first.Outline.ItemList[0].Content)
		assert.Equal(t, first.Outline, second.Outline)
	})

	t.Run("Markdown fenced JSON is accepted", func(t *testing.T) {
		mockAI := mocks.NewMockAIClient(t)
		mockTranscript := mocks.NewMockTranscript(t)
		a := agent.NewAgent(mockAI, mockTranscript, zap.NewNop())

		raw := "```json\n{\"itemList\":[{\"title\":\"Solo\",\"content\":\"x\"}]}\n```"
		mockTranscript.On("LogUserMessage", mock.Anything, sessionID, mock.AnythingOfType("string")).Return(nil).Once()
		mockAI.On("GenerateText", mock.Anything, "1", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("agent.GenerationParams")).
			Return(raw, agent.UsageInfo{}, nil).Once()
		mockTranscript.On("LogAgentMessage", mock.Anything, sessionID, raw, mock.Anything).Return(nil).Once()

		result, err := a.GenerateOutline(ctx, sessionID, newTestStory(), nil)
		require.NoError(t, err)
		assert.False(t, result.Fallback)
		require.Len(t, result.Outline.ItemList, 1)
		assert.Equal(t, "Solo", result.Outline.ItemList[0].Title)
	})

	t.Run("Transport error propagates and no agent message is logged", func(t *testing.T) {
		mockAI := mocks.NewMockAIClient(t)
		mockTranscript := mocks.NewMockTranscript(t)
		a := agent.NewAgent(mockAI, mockTranscript, zap.NewNop())

		mockTranscript.On("LogUserMessage", mock.Anything, sessionID, mock.AnythingOfType("string")).Return(nil).Once()
		mockAI.On("GenerateText", mock.Anything, "1", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("agent.GenerationParams")).
			Return("", agent.UsageInfo{}, models.ErrGenerationFailed).Once()

		result, err := a.GenerateOutline(ctx, sessionID, newTestStory(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrGenerationFailed)
		assert.Nil(t, result)

		mockTranscript.AssertNotCalled(t, "LogAgentMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAgent_GenerateContent(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("Identifiers are taken from the request, not the response", func(t *testing.T) {
		mockAI := mocks.NewMockAIClient(t)
		mockTranscript := mocks.NewMockTranscript(t)
		a := agent.NewAgent(mockAI, mockTranscript, zap.NewNop())

		// Модель вернула чужие идентификаторы, они должны быть перезаписаны.
		raw := `{"story_id":999,"outline_title":"Wrong","content":"The knight rode east."}`
		mockTranscript.On("LogUserMessage", mock.Anything, sessionID, mock.AnythingOfType("string")).Return(nil).Once()
		mockAI.On("GenerateText", mock.Anything, "1", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("agent.GenerationParams")).
			Return(raw, agent.UsageInfo{}, nil).Once()
		mockTranscript.On("LogAgentMessage", mock.Anything, sessionID, raw, mock.Anything).Return(nil).Once()

		result, err := a.GenerateContent(ctx, sessionID, newTestStory(), nil, "Chapter 1")
		require.NoError(t, err)
		require.NotNil(t, result.Content)
		assert.False(t, result.Fallback)
		assert.Equal(t, int64(7), result.Content.StoryID)
		assert.Equal(t, "Chapter 1", result.Content.OutlineTitle)
		assert.Equal(t, "The knight rode east.", result.Content.Content)
	})

	t.Run("Unstructured response falls back to placeholder prose", func(t *testing.T) {
		mockAI := mocks.NewMockAIClient(t)
		mockTranscript := mocks.NewMockTranscript(t)
		a := agent.NewAgent(mockAI, mockTranscript, zap.NewNop())

		mockTranscript.On("LogUserMessage", mock.Anything, sessionID, mock.AnythingOfType("string")).Return(nil).Once()
		mockAI.On("GenerateText", mock.Anything, "1", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("agent.GenerationParams")).
			Return("just prose", agent.UsageInfo{}, nil).Once()
		mockTranscript.On("LogAgentMessage", mock.Anything, sessionID, "just prose", mock.Anything).Return(nil).Once()

		result, err := a.GenerateContent(ctx, sessionID, newTestStory(), nil, "Chapter 2")
		require.NoError(t, err)
		require.True(t, result.Fallback)
		assert.Equal(t, "Generated content for Chapter 2 in T", result.Content.Content)
		assert.Equal(t, int64(7), result.Content.StoryID)
	})
}

func TestAgent_GenerateCharacter(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("Valid character response", func(t *testing.T) {
		mockAI := mocks.NewMockAIClient(t)
		mockTranscript := mocks.NewMockTranscript(t)
		a := agent.NewAgent(mockAI, mockTranscript, zap.NewNop())

		raw := `{"name":"Ser Aldric","description":"A weathered knight.","personality":"Stoic"}`
		mockTranscript.On("LogUserMessage", mock.Anything, sessionID, mock.AnythingOfType("string")).Return(nil).Once()
		mockAI.On("GenerateText", mock.Anything, "1", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("agent.GenerationParams")).
			Return(raw, agent.UsageInfo{}, nil).Once()
		mockTranscript.On("LogAgentMessage", mock.Anything, sessionID, raw, mock.Anything).Return(nil).Once()

		result, err := a.GenerateCharacter(ctx, sessionID, newTestStory(), "a brave knight")
		require.NoError(t, err)
		require.NotNil(t, result.Character)
		assert.False(t, result.Fallback)
		assert.Equal(t, "Ser Aldric", result.Character.Name)
		assert.Equal(t, int64(7), result.Character.StoryID)
	})

	t.Run("Plain text response is kept as the description", func(t *testing.T) {
		mockAI := mocks.NewMockAIClient(t)
		mockTranscript := mocks.NewMockTranscript(t)
		a := agent.NewAgent(mockAI, mockTranscript, zap.NewNop())

		mockTranscript.On("LogUserMessage", mock.Anything, sessionID, mock.AnythingOfType("string")).Return(nil).Once()
		mockAI.On("GenerateText", mock.Anything, "1", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("agent.GenerationParams")).
			Return("He is tall and grim.", agent.UsageInfo{}, nil).Once()
		mockTranscript.On("LogAgentMessage", mock.Anything, sessionID, "He is tall and grim.", mock.Anything).Return(nil).Once()

		result, err := a.GenerateCharacter(ctx, sessionID, newTestStory(), "a brave knight")
		require.NoError(t, err)
		require.True(t, result.Fallback)
		assert.Equal(t, "Generated Character", result.Character.Name)
		assert.Equal(t, "He is tall and grim.", result.Character.Description)
		assert.Equal(t, "Friendly and determined", result.Character.Personality)
	})

	t.Run("Parsed JSON without a name falls back to prompt reference", func(t *testing.T) {
		mockAI := mocks.NewMockAIClient(t)
		mockTranscript := mocks.NewMockTranscript(t)
		a := agent.NewAgent(mockAI, mockTranscript, zap.NewNop())

		raw := `{"description":"nameless"}`
		mockTranscript.On("LogUserMessage", mock.Anything, sessionID, mock.AnythingOfType("string")).Return(nil).Once()
		mockAI.On("GenerateText", mock.Anything, "1", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("agent.GenerationParams")).
			Return(raw, agent.UsageInfo{}, nil).Once()
		mockTranscript.On("LogAgentMessage", mock.Anything, sessionID, raw, mock.Anything).Return(nil).Once()

		result, err := a.GenerateCharacter(ctx, sessionID, newTestStory(), "a brave knight")
		require.NoError(t, err)
		require.True(t, result.Fallback)
		assert.Equal(t, "Character based on: a brave knight", result.Character.Description)
	})
}

func TestAgent_TranscriptFailureAbortsGeneration(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	mockAI := mocks.NewMockAIClient(t)
	mockTranscript := mocks.NewMockTranscript(t)
	a := agent.NewAgent(mockAI, mockTranscript, zap.NewNop())

	logErr := errors.New("log store down")
	mockTranscript.On("LogUserMessage", mock.Anything, sessionID, mock.AnythingOfType("string")).Return(logErr).Once()

	_, err := a.GenerateOutline(ctx, sessionID, newTestStory(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, logErr)

	mockAI.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
