package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"genstory-server/internal/agent"
	"genstory-server/internal/config"
	"genstory-server/internal/handler"
	"genstory-server/internal/mocks"
	"genstory-server/internal/models"
	"genstory-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// apiFixture поднимает полный HTTP-стек поверх моков репозиториев:
// настоящие сервисы, настоящий роутер, подменены только хранилища,
// кэш, почта и AI-клиент.
type apiFixture struct {
	router *gin.Engine

	stories     *mocks.MockStoryRepository
	characters  *mocks.MockCharacterRepository
	contents    *mocks.MockStoryContentRepository
	events      *mocks.MockEventRepository
	timelines   *mocks.MockTimelineRepository
	locations   *mocks.MockLocationRepository
	sessionRepo *mocks.MockSessionRepository
	cache       *mocks.MockSessionCache
	users       *mocks.MockUserRepository
	mailer      *mocks.MockMailer
	ai          *mocks.MockAIClient

	userSvc *service.UserService
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &apiFixture{
		stories:     mocks.NewMockStoryRepository(t),
		characters:  mocks.NewMockCharacterRepository(t),
		contents:    mocks.NewMockStoryContentRepository(t),
		events:      mocks.NewMockEventRepository(t),
		timelines:   mocks.NewMockTimelineRepository(t),
		locations:   mocks.NewMockLocationRepository(t),
		sessionRepo: mocks.NewMockSessionRepository(t),
		cache:       mocks.NewMockSessionCache(t),
		users:       mocks.NewMockUserRepository(t),
		mailer:      mocks.NewMockMailer(t),
		ai:          mocks.NewMockAIClient(t),
	}

	cfg := &config.Config{
		JWTSecret:            "handler-test-secret",
		JWTExpiry:            30 * time.Minute,
		PasswordPepper:       "handler-test-pepper",
		VerificationTokenTTL: 24 * time.Hour,
	}
	logger := zap.NewNop()

	sessionSvc := service.NewSessionService(f.sessionRepo, f.cache, logger)
	ag := agent.NewAgent(f.ai, sessionSvc, logger)
	f.userSvc = service.NewUserService(f.users, f.mailer, cfg, logger)

	h := handler.NewHandler(
		service.NewStoryService(f.stories, f.characters, ag, sessionSvc, logger),
		service.NewCharacterService(f.characters, f.stories, ag, sessionSvc, logger),
		service.NewStoryContentService(f.contents, f.stories, f.characters, ag, sessionSvc, logger),
		service.NewEventService(f.events, f.stories, logger),
		service.NewTimelineService(f.timelines, f.stories, logger),
		service.NewLocationService(f.locations, f.stories, logger),
		sessionSvc,
		f.userSvc,
	)

	f.router = gin.New()
	h.RegisterRoutes(f.router)
	return f
}

func (f *apiFixture) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStoryEndpoints(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		f := newAPIFixture(t)

		f.stories.On("Create", mock.Anything, mock.AnythingOfType("*models.Story")).
			Return(nil).Once().
			Run(func(args mock.Arguments) {
				s := args.Get(1).(*models.Story)
				assert.Equal(t, "The Lost Kingdom", s.Title)
				s.ID = 7
			})

		w := f.do(t, http.MethodPost, "/story/create/", gin.H{
			"title":           "The Lost Kingdom",
			"creator_user_id": 2,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var story models.Story
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &story))
		assert.Equal(t, int64(7), story.ID)
	})

	t.Run("Create without title", func(t *testing.T) {
		f := newAPIFixture(t)

		w := f.do(t, http.MethodPost, "/story/create/", gin.H{"creator_user_id": 2})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, models.ErrCodeBadRequest, decodeError(t, w).Code)
	})

	t.Run("Get unknown story", func(t *testing.T) {
		f := newAPIFixture(t)

		f.stories.On("GetByID", mock.Anything, int64(404)).Return(nil, models.ErrStoryNotFound).Once()

		w := f.do(t, http.MethodGet, "/story/404", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, models.ErrCodeNotFound, decodeError(t, w).Code)
	})

	t.Run("Non-numeric id", func(t *testing.T) {
		f := newAPIFixture(t)

		w := f.do(t, http.MethodGet, "/story/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("List with pagination", func(t *testing.T) {
		f := newAPIFixture(t)

		f.stories.On("List", mock.Anything, 5, 10).Return([]models.Story{{ID: 1}, {ID: 2}}, nil).Once()

		w := f.do(t, http.MethodGet, "/story/?skip=5&limit=10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var stories []models.Story
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stories))
		assert.Len(t, stories, 2)
	})

	t.Run("Delete", func(t *testing.T) {
		f := newAPIFixture(t)

		f.stories.On("Delete", mock.Anything, int64(7)).Return(nil).Once()

		w := f.do(t, http.MethodDelete, "/story/7", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.MessageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Story deleted", resp.Message)
	})
}

func TestGenerateOutlineEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	sessionID := uuid.New()
	f.stories.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Story{ID: 7, Title: "T", CreatorUserID: 2}, nil).Once()
	f.characters.On("ListByStoryID", mock.Anything, int64(7)).Return([]models.Character{}, nil).Once()
	f.sessionRepo.On("GetActiveSessionByUser", mock.Anything, int64(2)).
		Return(&models.Session{ID: sessionID, UserID: 2, Status: models.SessionStatusActive}, nil).Once()
	f.sessionRepo.On("GetSession", mock.Anything, sessionID).
		Return(&models.Session{ID: sessionID, UserID: 2, Status: models.SessionStatusActive}, nil).Twice()
	f.sessionRepo.On("AppendMessage", mock.Anything, mock.AnythingOfType("*models.SessionMessage")).Return(nil).Twice()
	f.cache.On("Invalidate", mock.Anything, sessionID).Return(nil).Twice()
	f.ai.On("GenerateText", mock.Anything, "2", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("agent.GenerationParams")).
		Return(`{"itemList":[{"title":"The Road","content":"Departure."}]}`, agent.UsageInfo{}, nil).Once()

	w := f.do(t, http.MethodPost, "/story/generate_outline/?story_id=7", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var outline models.StoryOutline
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outline))
	require.Len(t, outline.ItemList, 1)
	assert.Equal(t, "The Road", outline.ItemList[0].Title)

	// План не сохраняется, историю не трогаем.
	f.stories.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserEndpoints(t *testing.T) {
	t.Run("Register", func(t *testing.T) {
		f := newAPIFixture(t)

		f.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
			Return(nil).Once().
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.User).ID = 3
			})
		f.mailer.On("SendVerificationMail", mock.Anything, "alice@example.com", mock.AnythingOfType("string")).
			Return(nil).Once()

		w := f.do(t, http.MethodPost, "/user/register", gin.H{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "secret-password",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var user models.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		assert.Equal(t, int64(3), user.ID)
		// Хеш пароля не попадает в ответ.
		assert.NotContains(t, w.Body.String(), "password_hash")
	})

	t.Run("Register duplicate email maps to 400", func(t *testing.T) {
		f := newAPIFixture(t)

		f.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
			Return(models.ErrEmailAlreadyExists).Once()

		w := f.do(t, http.MethodPost, "/user/register", gin.H{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "secret-password",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, models.ErrCodeDuplicateEmail, decodeError(t, w).Code)
	})

	t.Run("Token with wrong credentials", func(t *testing.T) {
		f := newAPIFixture(t)

		f.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, models.ErrUserNotFound).Once()
		f.users.On("GetByEmail", mock.Anything, "ghost").Return(nil, models.ErrUserNotFound).Once()

		form := url.Values{"username": {"ghost"}, "password": {"nope"}}
		req := httptest.NewRequest(http.MethodPost, "/user/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, models.ErrCodeWrongCredentials, decodeError(t, w).Code)
	})

	t.Run("Token form requires both fields", func(t *testing.T) {
		f := newAPIFixture(t)

		form := url.Values{"username": {"alice"}}
		req := httptest.NewRequest(http.MethodPost, "/user/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Verify email with expired token", func(t *testing.T) {
		f := newAPIFixture(t)

		issued := time.Now().Add(-48 * time.Hour)
		token := "stale"
		f.users.On("GetByVerificationToken", mock.Anything, "stale").Return(&models.User{
			ID:                3,
			VerificationToken: &token,
			TokenCreatedAt:    &issued,
		}, nil).Once()

		w := f.do(t, http.MethodGet, "/user/verify-email?token=stale", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, models.ErrCodeTokenExpired, decodeError(t, w).Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("Missing Authorization header", func(t *testing.T) {
		f := newAPIFixture(t)

		w := f.do(t, http.MethodGet, "/user/users/me/", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, models.ErrCodeTokenInvalid, decodeError(t, w).Code)
	})

	t.Run("Malformed bearer token", func(t *testing.T) {
		f := newAPIFixture(t)

		w := f.do(t, http.MethodGet, "/user/users/me/", nil, "Authorization", "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid token reaches the handler", func(t *testing.T) {
		f := newAPIFixture(t)

		// Выписываем токен через настоящий логин-флоу.
		hash, err := hashFor(t, f, "correct-password")
		require.NoError(t, err)
		user := &models.User{ID: 3, Username: "alice", Email: "alice@example.com", PasswordHash: hash, IsVerified: true}
		f.users.On("GetByUsername", mock.Anything, "alice").Return(user, nil).Once()

		tokens, err := f.userSvc.Login(t.Context(), "alice", "correct-password")
		require.NoError(t, err)

		f.users.On("GetByID", mock.Anything, int64(3)).Return(user, nil).Once()

		w := f.do(t, http.MethodGet, "/user/users/me/", nil, "Authorization", "Bearer "+tokens.AccessToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var me models.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
		assert.Equal(t, "alice", me.Username)
	})
}

// hashFor строит bcrypt-хеш тем же путем, что и регистрация:
// через UpdateFields с новым паролем.
func hashFor(t *testing.T, f *apiFixture, password string) (string, error) {
	t.Helper()
	var hash string
	f.users.On("UpdateFields", mock.Anything, int64(99), mock.AnythingOfType("*models.UserUpdate")).
		Return(nil).Once().
		Run(func(args mock.Arguments) {
			upd := args.Get(2).(*models.UserUpdate)
			hash = *upd.Password
		})
	f.users.On("GetByID", mock.Anything, int64(99)).Return(&models.User{ID: 99}, nil).Once()

	_, err := f.userSvc.UpdateUser(t.Context(), 99, &models.UserUpdate{Password: &password})
	return hash, err
}

func TestSessionEndpoints(t *testing.T) {
	t.Run("Get messages in sequence order", func(t *testing.T) {
		f := newAPIFixture(t)

		sessionID := uuid.New()
		stored := []models.SessionMessage{
			{SessionID: sessionID, SequenceNumber: 1, Role: models.RoleUser, Content: "q"},
			{SessionID: sessionID, SequenceNumber: 2, Role: models.RoleAgent, Content: "a"},
		}
		f.cache.On("GetMessages", mock.Anything, sessionID).Return(stored, true, nil).Once()

		w := f.do(t, http.MethodGet, "/session/"+sessionID.String()+"/messages", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var messages []models.SessionMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
		require.Len(t, messages, 2)
		assert.Equal(t, 1, messages[0].SequenceNumber)
	})

	t.Run("Invalid session id", func(t *testing.T) {
		f := newAPIFixture(t)

		w := f.do(t, http.MethodGet, "/session/not-a-uuid/messages", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Close session", func(t *testing.T) {
		f := newAPIFixture(t)

		sessionID := uuid.New()
		f.sessionRepo.On("SetSessionStatus", mock.Anything, sessionID, models.SessionStatusClosed).Return(nil).Once()
		f.cache.On("Invalidate", mock.Anything, sessionID).Return(nil).Once()

		w := f.do(t, http.MethodPost, "/session/"+sessionID.String()+"/close", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Duplicate tool name maps to 409", func(t *testing.T) {
		f := newAPIFixture(t)

		f.sessionRepo.On("RegisterTool", mock.Anything, mock.AnythingOfType("*models.Tool")).
			Return(models.ErrToolAlreadyExists).Once()

		w := f.do(t, http.MethodPost, "/session/tools", gin.H{"name": "generate_outline"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, models.ErrCodeConflict, decodeError(t, w).Code)
	})
}

func TestTimelineEndpoints(t *testing.T) {
	t.Run("Second timeline for a story maps to 409", func(t *testing.T) {
		f := newAPIFixture(t)

		f.stories.On("GetByID", mock.Anything, int64(7)).Return(&models.Story{ID: 7}, nil).Once()
		f.timelines.On("Create", mock.Anything, mock.AnythingOfType("*models.Timeline")).
			Return(models.ErrTimelineAlreadyExists).Once()

		w := f.do(t, http.MethodPost, "/timeline/create/", gin.H{"story_id": 7, "name": "Second"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Get by story", func(t *testing.T) {
		f := newAPIFixture(t)

		f.timelines.On("GetByStoryID", mock.Anything, int64(7)).
			Return(&models.Timeline{ID: 2, StoryID: 7, Name: "Main"}, nil).Once()

		w := f.do(t, http.MethodGet, "/timeline/story/7", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var timeline models.Timeline
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &timeline))
		assert.Equal(t, "Main", timeline.Name)
	})
}
