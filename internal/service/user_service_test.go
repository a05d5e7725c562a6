package service

import (
	"context"
	"testing"
	"time"

	"genstory-server/internal/config"
	"genstory-server/internal/mocks"
	"genstory-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testUserConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "unit-test-secret",
		JWTExpiry:            30 * time.Minute,
		PasswordPepper:       "unit-test-pepper",
		VerificationTokenTTL: 24 * time.Hour,
	}
}

func newUserService(t *testing.T) (*UserService, *mocks.MockUserRepository, *mocks.MockMailer) {
	t.Helper()
	repo := mocks.NewMockUserRepository(t)
	mailer := mocks.NewMockMailer(t)
	svc := NewUserService(repo, mailer, testUserConfig(), zap.NewNop())
	return svc, repo, mailer
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo, mailer := newUserService(t)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
			Return(nil).Once().
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*models.User)
				u.ID = 5
				// Email нормализуется до записи.
				assert.Equal(t, "alice@example.com", u.Email)
				assert.NotEmpty(t, u.PasswordHash)
				assert.NotEqual(t, "secret-password", u.PasswordHash)
				require.NotNil(t, u.VerificationToken)
				assert.NotEmpty(t, *u.VerificationToken)
				require.NotNil(t, u.TokenCreatedAt)
			})
		mailer.On("SendVerificationMail", mock.Anything, "alice@example.com", mock.AnythingOfType("string")).
			Return(nil).Once()

		user, err := svc.Register(ctx, &models.UserCreate{
			Username: "alice",
			Email:    "  Alice@Example.COM ",
			Password: "secret-password",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Mail failure rolls back the created user", func(t *testing.T) {
		svc, repo, mailer := newUserService(t)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
			Return(nil).Once().
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.User).ID = 9
			})
		mailer.On("SendVerificationMail", mock.Anything, "bob@example.com", mock.AnythingOfType("string")).
			Return(models.ErrMailDeliveryFailed).Once()
		repo.On("Delete", mock.Anything, int64(9)).Return(nil).Once()

		user, err := svc.Register(ctx, &models.UserCreate{
			Username: "bob",
			Email:    "bob@example.com",
			Password: "secret-password",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrMailDeliveryFailed)
		assert.Nil(t, user)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate username is returned without sending mail", func(t *testing.T) {
		svc, repo, mailer := newUserService(t)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
			Return(models.ErrUserAlreadyExists).Once()

		_, err := svc.Register(ctx, &models.UserCreate{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret-password",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrUserAlreadyExists)
		mailer.AssertNotCalled(t, "SendVerificationMail", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	cfg := testUserConfig()

	hash, err := hashPassword("correct-password", cfg.PasswordPepper)
	require.NoError(t, err)

	verifiedUser := func() *models.User {
		return &models.User{
			ID:           3,
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: hash,
			IsVerified:   true,
		}
	}

	t.Run("Success by username", func(t *testing.T) {
		svc, repo, _ := newUserService(t)

		repo.On("GetByUsername", mock.Anything, "alice").Return(verifiedUser(), nil).Once()

		tokens, err := svc.Login(ctx, "alice", "correct-password")
		require.NoError(t, err)
		assert.Equal(t, "bearer", tokens.TokenType)

		// Выданный токен принимается обратной проверкой.
		claims, err := svc.VerifyAccessToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(3), claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Subject)
	})

	t.Run("Falls back to email lookup", func(t *testing.T) {
		svc, repo, _ := newUserService(t)

		repo.On("GetByUsername", mock.Anything, "alice@example.com").Return(nil, models.ErrUserNotFound).Once()
		repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(verifiedUser(), nil).Once()

		_, err := svc.Login(ctx, "alice@example.com", "correct-password")
		require.NoError(t, err)
	})

	t.Run("Unknown user", func(t *testing.T) {
		svc, repo, _ := newUserService(t)

		repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, models.ErrUserNotFound).Once()
		repo.On("GetByEmail", mock.Anything, "ghost").Return(nil, models.ErrUserNotFound).Once()

		_, err := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("Wrong password", func(t *testing.T) {
		svc, repo, _ := newUserService(t)

		repo.On("GetByUsername", mock.Anything, "alice").Return(verifiedUser(), nil).Once()

		_, err := svc.Login(ctx, "alice", "wrong-password")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("Unverified email", func(t *testing.T) {
		svc, repo, _ := newUserService(t)

		user := verifiedUser()
		user.IsVerified = false
		repo.On("GetByUsername", mock.Anything, "alice").Return(user, nil).Once()

		_, err := svc.Login(ctx, "alice", "correct-password")
		assert.ErrorIs(t, err, models.ErrEmailNotVerified)
	})
}

func TestUserService_VerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo, _ := newUserService(t)

		issued := time.Now().Add(-time.Hour)
		token := "valid-token"
		repo.On("GetByVerificationToken", mock.Anything, token).Return(&models.User{
			ID:                4,
			VerificationToken: &token,
			TokenCreatedAt:    &issued,
		}, nil).Once()
		repo.On("MarkVerified", mock.Anything, int64(4)).Return(nil).Once()

		require.NoError(t, svc.VerifyEmail(ctx, token))
	})

	t.Run("Expired token", func(t *testing.T) {
		svc, repo, _ := newUserService(t)

		issued := time.Now().Add(-25 * time.Hour)
		token := "stale-token"
		repo.On("GetByVerificationToken", mock.Anything, token).Return(&models.User{
			ID:                4,
			VerificationToken: &token,
			TokenCreatedAt:    &issued,
		}, nil).Once()

		err := svc.VerifyEmail(ctx, token)
		assert.ErrorIs(t, err, models.ErrVerificationTokenExpired)
		repo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
	})

	t.Run("Unknown token", func(t *testing.T) {
		svc, repo, _ := newUserService(t)

		repo.On("GetByVerificationToken", mock.Anything, "missing").
			Return(nil, models.ErrVerificationTokenInvalid).Once()

		err := svc.VerifyEmail(ctx, "missing")
		assert.ErrorIs(t, err, models.ErrVerificationTokenInvalid)
	})
}

func TestUserService_ResendVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("Success issues a fresh token", func(t *testing.T) {
		svc, repo, mailer := newUserService(t)

		repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&models.User{
			ID:    3,
			Email: "alice@example.com",
		}, nil).Once()
		repo.On("SetVerificationToken", mock.Anything, int64(3), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Return(nil).Once()
		mailer.On("SendVerificationMail", mock.Anything, "alice@example.com", mock.AnythingOfType("string")).
			Return(nil).Once()

		require.NoError(t, svc.ResendVerification(ctx, "Alice@Example.com"))
	})

	t.Run("Already verified", func(t *testing.T) {
		svc, repo, mailer := newUserService(t)

		repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&models.User{
			ID:         3,
			Email:      "alice@example.com",
			IsVerified: true,
		}, nil).Once()

		err := svc.ResendVerification(ctx, "alice@example.com")
		assert.ErrorIs(t, err, models.ErrEmailAlreadyVerified)
		mailer.AssertNotCalled(t, "SendVerificationMail", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_VerifyAccessToken(t *testing.T) {
	svc, _, _ := newUserService(t)

	t.Run("Malformed token", func(t *testing.T) {
		_, err := svc.VerifyAccessToken("not-a-jwt")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})

	t.Run("Token signed with another secret", func(t *testing.T) {
		otherCfg := testUserConfig()
		otherCfg.JWTSecret = "different-secret"
		other := NewUserService(mocks.NewMockUserRepository(t), mocks.NewMockMailer(t), otherCfg, zap.NewNop())

		token, err := other.createAccessToken(&models.User{ID: 1, Email: "a@b.c"})
		require.NoError(t, err)

		_, err = svc.VerifyAccessToken(token)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("Expired token", func(t *testing.T) {
		expiredCfg := testUserConfig()
		expiredCfg.JWTExpiry = -time.Minute
		expired := NewUserService(mocks.NewMockUserRepository(t), mocks.NewMockMailer(t), expiredCfg, zap.NewNop())

		token, err := expired.createAccessToken(&models.User{ID: 1, Email: "a@b.c"})
		require.NoError(t, err)

		_, err = svc.VerifyAccessToken(token)
		assert.ErrorIs(t, err, models.ErrTokenExpired)
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := hashPassword("password", "pepper")
	require.NoError(t, err)

	assert.True(t, checkPasswordHash("password", hash, "pepper"))
	assert.False(t, checkPasswordHash("password", hash, "other-pepper"))
	assert.False(t, checkPasswordHash("other-password", hash, "pepper"))
}
