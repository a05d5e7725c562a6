package database_test // Используем _test пакет для изоляции

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"genstory-server/internal/database"
	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	// Докер клиент для проверки доступности
	"github.com/docker/docker/client"
)

// RepositoryTestSuite поднимает PostgreSQL и Redis в контейнерах
// и гоняет репозитории по настоящей схеме.
type RepositoryTestSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	rdContainer *tcredis.RedisContainer
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	logger      *zap.Logger

	users     interfaces.UserRepository
	stories   interfaces.StoryRepository
	chars     interfaces.CharacterRepository
	contents  interfaces.StoryContentRepository
	timelines interfaces.TimelineRepository
	sessions  interfaces.SessionRepository
	cache     interfaces.SessionCache
}

func (s *RepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err, "Failed to create logger for tests")

	// Запускаем контейнер PostgreSQL
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pgPool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	// Применяем встроенные миграции
	require.NoError(s.T(), database.ApplyMigrations(pgConnStr, s.logger), "Failed to run migrations")

	// Запускаем контейнер Redis
	s.rdContainer, err = tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(1*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start redis container")

	redisHost, err := s.rdContainer.Host(s.ctx)
	require.NoError(s.T(), err)
	redisPort, err := s.rdContainer.MappedPort(s.ctx, "6379/tcp")
	require.NoError(s.T(), err)

	s.redisClient = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port())})
	_, err = s.redisClient.Ping(s.ctx).Result()
	require.NoError(s.T(), err, "Failed to connect to test redis")

	s.users = database.NewPgUserRepository(s.pgPool, s.logger)
	s.stories = database.NewPgStoryRepository(s.pgPool, s.logger)
	s.chars = database.NewPgCharacterRepository(s.pgPool, s.logger)
	s.contents = database.NewPgStoryContentRepository(s.pgPool, s.logger)
	s.timelines = database.NewPgTimelineRepository(s.pgPool, s.logger)
	s.sessions = database.NewPgSessionRepository(s.pgPool, s.logger)
	s.cache = database.NewRedisSessionCache(s.redisClient, time.Minute, s.logger)
}

func (s *RepositoryTestSuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
	if s.rdContainer != nil {
		if err := s.rdContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate redis container", zap.Error(err))
		}
	}
}

// Перед каждым тестом очищаем Redis и таблицы БД
func (s *RepositoryTestSuite) SetupTest() {
	require.NoError(s.T(), s.redisClient.FlushDB(s.ctx).Err(), "Failed to flush Redis DB")

	// ОСТОРОЖНО: НЕ запускать на production БД!
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE users, stories, sessions, tools RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err, "Failed to truncate tables")
}

func TestRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	// Проверяем доступность Docker перед запуском
	cli, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		t.Fatalf("Docker client init error: %v. Ensure Docker is running and accessible.", err)
	}
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Fatalf("Docker daemon is not running or accessible: %v", err)
	}
	cli.Close()

	suite.Run(t, new(RepositoryTestSuite))
}

// --- Хелперы ---

func (s *RepositoryTestSuite) createStory(title string) *models.Story {
	story := &models.Story{Title: title, CreatorUserID: 1}
	require.NoError(s.T(), s.stories.Create(s.ctx, story))
	require.NotZero(s.T(), story.ID)
	return story
}

func (s *RepositoryTestSuite) createSession(userID int64) *models.Session {
	session := &models.Session{UserID: userID}
	require.NoError(s.T(), s.sessions.CreateSession(s.ctx, session))
	require.NotEqual(s.T(), uuid.Nil, session.ID)
	return session
}

// --- Сами Тестовые Функции ---

func (s *RepositoryTestSuite) TestUserRepository_UniqueConstraints() {
	t := s.T()
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, s.users.Create(ctx, user))
	require.NotZero(t, user.ID)

	// Повторная регистрация с тем же username
	err := s.users.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "hash"})
	require.True(t, errors.Is(err, models.ErrUserAlreadyExists), "Error should be ErrUserAlreadyExists, got: %v", err)

	// Повторная регистрация с тем же email
	err = s.users.Create(ctx, &models.User{Username: "other", Email: "alice@example.com", PasswordHash: "hash"})
	require.True(t, errors.Is(err, models.ErrEmailAlreadyExists), "Error should be ErrEmailAlreadyExists, got: %v", err)
}

func (s *RepositoryTestSuite) TestUserRepository_VerificationFlow() {
	t := s.T()
	ctx := context.Background()

	token := "verification-token-1"
	now := time.Now()
	user := &models.User{
		Username:          "bob",
		Email:             "bob@example.com",
		PasswordHash:      "hash",
		VerificationToken: &token,
		TokenCreatedAt:    &now,
	}
	require.NoError(t, s.users.Create(ctx, user))

	found, err := s.users.GetByVerificationToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)
	require.False(t, found.IsVerified)

	require.NoError(t, s.users.MarkVerified(ctx, user.ID))

	// Токен одноразовый: после верификации он очищен
	verified, err := s.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, verified.IsVerified)
	require.Nil(t, verified.VerificationToken)

	_, err = s.users.GetByVerificationToken(ctx, token)
	require.True(t, errors.Is(err, models.ErrVerificationTokenInvalid), "Used token should not resolve, got: %v", err)
}

func (s *RepositoryTestSuite) TestUserRepository_HardDelete() {
	t := s.T()
	ctx := context.Background()

	user := &models.User{Username: "gone", Email: "gone@example.com", PasswordHash: "hash"}
	require.NoError(t, s.users.Create(ctx, user))
	require.NoError(t, s.users.Delete(ctx, user.ID))

	_, err := s.users.GetByID(ctx, user.ID)
	require.True(t, errors.Is(err, models.ErrUserNotFound))

	// Username освобождается для повторной регистрации
	require.NoError(t, s.users.Create(ctx, &models.User{Username: "gone", Email: "gone2@example.com", PasswordHash: "hash"}))
}

func (s *RepositoryTestSuite) TestStoryRepository_PartialUpdate() {
	t := s.T()
	ctx := context.Background()

	summary := "Original summary"
	story := s.createStory("The Lost Kingdom")
	_, err := s.stories.GetByID(ctx, story.ID)
	require.NoError(t, err)

	// Обновляем только summary, остальные поля не трогаем
	require.NoError(t, s.stories.UpdateFields(ctx, story.ID, &models.StoryUpdate{Summary: &summary}))

	updated, err := s.stories.GetByID(ctx, story.ID)
	require.NoError(t, err)
	require.Equal(t, "The Lost Kingdom", updated.Title)
	require.NotNil(t, updated.Summary)
	require.Equal(t, summary, *updated.Summary)
}

func (s *RepositoryTestSuite) TestStoryRepository_OutlineRoundTrip() {
	t := s.T()
	ctx := context.Background()

	story := s.createStory("Outlined")
	outline := &models.StoryOutline{ItemList: []models.OutlineItem{
		{Title: "Chapter 1", Content: "Departure", Children: []models.OutlineItem{
			{Title: "Chapter 1.1", Content: "The road"},
		}},
		{Title: "Chapter 2", Content: "Arrival"},
	}}
	require.NoError(t, s.stories.UpdateFields(ctx, story.ID, &models.StoryUpdate{Outline: outline}))

	got, err := s.stories.GetByID(ctx, story.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Outline)
	require.Len(t, got.Outline.ItemList, 2)
	require.Len(t, got.Outline.ItemList[0].Children, 1)
	require.Equal(t, "Chapter 1.1", got.Outline.ItemList[0].Children[0].Title)
}

func (s *RepositoryTestSuite) TestStoryContent_StampsOutlineReference() {
	t := s.T()
	ctx := context.Background()

	story := s.createStory("With Content")
	outline := &models.StoryOutline{ItemList: []models.OutlineItem{
		{Title: "Chapter 1", Content: "Departure"},
		{Title: "Chapter 2", Content: "Arrival"},
	}}
	require.NoError(t, s.stories.UpdateFields(ctx, story.ID, &models.StoryUpdate{Outline: outline}))

	content := &models.StoryContent{StoryID: story.ID, OutlineTitle: "Chapter 2", Content: "The knight arrived."}
	require.NoError(t, s.contents.Create(ctx, content))
	require.NotZero(t, content.ID)

	// Создание контента проставляет обратную ссылку в совпадающем пункте плана
	got, err := s.stories.GetByID(ctx, story.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Outline)
	require.Nil(t, got.Outline.ItemList[0].StoryContentID)
	require.NotNil(t, got.Outline.ItemList[1].StoryContentID)
	require.Equal(t, content.ID, *got.Outline.ItemList[1].StoryContentID)

	byStory, err := s.contents.ListByStoryID(ctx, story.ID)
	require.NoError(t, err)
	require.Len(t, byStory, 1)
}

func (s *RepositoryTestSuite) TestStoryContent_RestampOnRegenerate() {
	t := s.T()
	ctx := context.Background()

	story := s.createStory("Regenerated")
	outline := &models.StoryOutline{ItemList: []models.OutlineItem{
		{Title: "Chapter 1", Content: "Departure"},
		{Title: "Chapter 2", Content: "Arrival"},
	}}
	require.NoError(t, s.stories.UpdateFields(ctx, story.ID, &models.StoryUpdate{Outline: outline}))

	first := &models.StoryContent{StoryID: story.ID, OutlineTitle: "Chapter 2", Content: "First draft."}
	require.NoError(t, s.contents.Create(ctx, first))
	second := &models.StoryContent{StoryID: story.ID, OutlineTitle: "Chapter 2", Content: "Second draft."}
	require.NoError(t, s.contents.Create(ctx, second))
	require.NotEqual(t, first.ID, second.ID)

	// Повторная генерация перезаписывает ссылку в плане, но старый контент не удаляет
	got, err := s.stories.GetByID(ctx, story.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Outline)
	require.NotNil(t, got.Outline.ItemList[1].StoryContentID)
	require.Equal(t, second.ID, *got.Outline.ItemList[1].StoryContentID)

	byStory, err := s.contents.ListByStoryID(ctx, story.ID)
	require.NoError(t, err)
	require.Len(t, byStory, 2)
}

func (s *RepositoryTestSuite) TestTimelineRepository_OnePerStory() {
	t := s.T()
	ctx := context.Background()

	story := s.createStory("Timed")
	require.NoError(t, s.timelines.Create(ctx, &models.Timeline{StoryID: story.ID, Name: "Main"}))

	err := s.timelines.Create(ctx, &models.Timeline{StoryID: story.ID, Name: "Second"})
	require.True(t, errors.Is(err, models.ErrTimelineAlreadyExists), "Error should be ErrTimelineAlreadyExists, got: %v", err)

	timeline, err := s.timelines.GetByStoryID(ctx, story.ID)
	require.NoError(t, err)
	require.Equal(t, "Main", timeline.Name)
}

func (s *RepositoryTestSuite) TestSessionRepository_SequenceNumbers() {
	t := s.T()
	ctx := context.Background()

	user := &models.User{Username: "seq", Email: "seq@example.com", PasswordHash: "hash"}
	require.NoError(t, s.users.Create(ctx, user))
	session := s.createSession(user.ID)

	tokens := 17
	for i, role := range []models.MessageRole{models.RoleUser, models.RoleAgent, models.RoleUser} {
		msg := &models.SessionMessage{SessionID: session.ID, Role: role, Content: fmt.Sprintf("message %d", i)}
		if role == models.RoleAgent {
			msg.TokensUsed = &tokens
		}
		require.NoError(t, s.sessions.AppendMessage(ctx, msg))
	}

	messages, err := s.sessions.GetMessages(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	// Номера строго возрастают с единицы, без пропусков
	for i, msg := range messages {
		require.Equal(t, i+1, msg.SequenceNumber)
	}

	stats, err := s.sessions.GetSessionStats(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, 3, stats.MessageCount)
	require.Equal(t, 17, stats.TotalTokens)
}

func (s *RepositoryTestSuite) TestSessionRepository_ActiveSessionLifecycle() {
	t := s.T()
	ctx := context.Background()

	user := &models.User{Username: "lifecycle", Email: "lifecycle@example.com", PasswordHash: "hash"}
	require.NoError(t, s.users.Create(ctx, user))

	session := s.createSession(user.ID)
	active, err := s.sessions.GetActiveSessionByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, session.ID, active.ID)

	require.NoError(t, s.sessions.SetSessionStatus(ctx, session.ID, models.SessionStatusClosed))

	_, err = s.sessions.GetActiveSessionByUser(ctx, user.ID)
	require.True(t, errors.Is(err, models.ErrSessionNotFound), "Closed session must not be returned as active, got: %v", err)

	closed, err := s.sessions.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, models.SessionStatusClosed, closed.Status)
}

func (s *RepositoryTestSuite) TestSessionRepository_Tools() {
	t := s.T()
	ctx := context.Background()

	user := &models.User{Username: "tooluser", Email: "tool@example.com", PasswordHash: "hash"}
	require.NoError(t, s.users.Create(ctx, user))
	session := s.createSession(user.ID)

	msg := &models.SessionMessage{SessionID: session.ID, Role: models.RoleUser, Content: "use tool"}
	require.NoError(t, s.sessions.AppendMessage(ctx, msg))

	tool := &models.Tool{Name: "generate_outline", IsActive: true}
	require.NoError(t, s.sessions.RegisterTool(ctx, tool))
	require.NotEqual(t, uuid.Nil, tool.ID)

	err := s.sessions.RegisterTool(ctx, &models.Tool{Name: "generate_outline", IsActive: true})
	require.True(t, errors.Is(err, models.ErrToolAlreadyExists), "Error should be ErrToolAlreadyExists, got: %v", err)

	execMs := 120
	usage := &models.ToolUsage{SessionID: session.ID, ToolID: tool.ID, MessageID: msg.ID, ExecutionTimeMs: &execMs, Success: true}
	require.NoError(t, s.sessions.RecordToolUsage(ctx, usage))

	usages, err := s.sessions.GetToolUsage(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, usages, 1)
	require.True(t, usages[0].Success)

	stats, err := s.sessions.GetSessionStats(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stats.ToolUsageCount)
}

func (s *RepositoryTestSuite) TestRedisSessionCache_RoundTrip() {
	t := s.T()
	ctx := context.Background()
	sessionID := uuid.New()

	// Пустой кэш - промах
	_, ok, err := s.cache.GetMessages(ctx, sessionID)
	require.NoError(t, err)
	require.False(t, ok)

	messages := []models.SessionMessage{
		{ID: uuid.New(), SessionID: sessionID, SequenceNumber: 1, Role: models.RoleUser, Content: "q"},
		{ID: uuid.New(), SessionID: sessionID, SequenceNumber: 2, Role: models.RoleAgent, Content: "a"},
	}
	require.NoError(t, s.cache.SetMessages(ctx, sessionID, messages))

	cached, ok, err := s.cache.GetMessages(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, cached, 2)
	require.Equal(t, "q", cached[0].Content)

	require.NoError(t, s.cache.Invalidate(ctx, sessionID))

	_, ok, err = s.cache.GetMessages(ctx, sessionID)
	require.NoError(t, err)
	require.False(t, ok)
}

func (s *RepositoryTestSuite) TestCharacterRepository_LinksAndRelationships() {
	t := s.T()
	ctx := context.Background()

	story := s.createStory("Cast")
	hero := &models.Character{StoryID: story.ID, Name: "Hero"}
	villain := &models.Character{StoryID: story.ID, Name: "Villain"}
	require.NoError(t, s.chars.Create(ctx, hero))
	require.NoError(t, s.chars.Create(ctx, villain))

	rel := &models.CharacterRelationship{
		CharacterID:        hero.ID,
		RelatedCharacterID: villain.ID,
		RelationshipType:   models.RelationshipEnemy,
		Strength:           8,
	}
	require.NoError(t, s.chars.SetRelationship(ctx, rel))

	// Повторная запись той же пары обновляет связь, а не дублирует ее
	rel.RelationshipType = models.RelationshipRival
	require.NoError(t, s.chars.SetRelationship(ctx, rel))

	rels, err := s.chars.ListRelationships(ctx, hero.ID)
	require.NoError(t, err)
	require.Len(t, rels, 1)
	require.Equal(t, models.RelationshipRival, rels[0].RelationshipType)

	byStory, err := s.chars.ListByStoryID(ctx, story.ID)
	require.NoError(t, err)
	require.Len(t, byStory, 2)

	// Удаление истории каскадно убирает персонажей
	require.NoError(t, s.stories.Delete(ctx, story.ID))
	_, err = s.chars.GetByID(ctx, hero.ID)
	require.True(t, errors.Is(err, models.ErrCharacterNotFound))
}
