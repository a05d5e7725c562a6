package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"genstory-server/internal/config"
	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService управляет регистрацией, верификацией email и выдачей токенов.
type UserService struct {
	users  interfaces.UserRepository
	mailer interfaces.Mailer
	cfg    *config.Config
	logger *zap.Logger
}

// NewUserService создает сервис пользователей.
func NewUserService(users interfaces.UserRepository, mailer interfaces.Mailer, cfg *config.Config, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		mailer: mailer,
		cfg:    cfg,
		logger: logger.Named("UserService"),
	}
}

// Register создает пользователя и отправляет письмо верификации.
// Если письмо отправить не удалось, только что созданный пользователь
// удаляется (best-effort компенсация), и возвращается ErrMailDeliveryFailed:
// аккаунт, который невозможно верифицировать, не должен оставаться в базе.
func (s *UserService) Register(ctx context.Context, create *models.UserCreate) (*models.User, error) {
	create.Email = normalizeEmail(create.Email)

	hash, err := hashPassword(create.Password, s.cfg.PasswordPepper)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := generateVerificationToken()
	if err != nil {
		s.logger.Error("Failed to generate verification token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	now := time.Now()

	user := &models.User{
		Username:          create.Username,
		Email:             create.Email,
		PasswordHash:      hash,
		VerificationToken: &token,
		TokenCreatedAt:    &now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationMail(ctx, user.Email, token); err != nil {
		s.logger.Error("Verification mail failed, rolling back user creation",
			zap.Error(err), zap.Int64("userID", user.ID))
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error("Failed to delete user after mail failure", zap.Error(delErr), zap.Int64("userID", user.ID))
		}
		if errors.Is(err, models.ErrMailDeliveryFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrMailDeliveryFailed, err)
	}

	s.logger.Info("User registered", zap.Int64("userID", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login проверяет пароль и возвращает bearer-токен (OAuth2 password grant).
// В поле username принимается имя пользователя либо email.
func (s *UserService) Login(ctx context.Context, usernameOrEmail, password string) (*models.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, usernameOrEmail)
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
		user, err = s.users.GetByEmail(ctx, usernameOrEmail)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				s.logger.Debug("Login attempt for unknown user", zap.String("login", usernameOrEmail))
				return nil, models.ErrInvalidCredentials
			}
			return nil, err
		}
	}

	if !checkPasswordHash(password, user.PasswordHash, s.cfg.PasswordPepper) {
		s.logger.Debug("Login attempt with wrong password", zap.Int64("userID", user.ID))
		return nil, models.ErrInvalidCredentials
	}

	if !user.IsVerified {
		s.logger.Debug("Login attempt with unverified email", zap.Int64("userID", user.ID))
		return nil, models.ErrEmailNotVerified
	}

	tokenString, err := s.createAccessToken(user)
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err), zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	s.logger.Info("User logged in", zap.Int64("userID", user.ID))
	return &models.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
	}, nil
}

// VerifyEmail проверяет одноразовый токен верификации. Токен действует
// в течение настроенного окна с момента выдачи и очищается при успехе,
// поэтому повторное использование невозможно.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	if user.TokenCreatedAt == nil || time.Since(*user.TokenCreatedAt) > s.cfg.VerificationTokenTTL {
		s.logger.Debug("Verification token expired", zap.Int64("userID", user.ID))
		return models.ErrVerificationTokenExpired
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return err
	}
	s.logger.Info("Email verified", zap.Int64("userID", user.ID))
	return nil
}

// ResendVerification выдает новый токен и отправляет письмо повторно.
func (s *UserService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	if user.IsVerified {
		s.logger.Debug("Resend verification for already verified user", zap.Int64("userID", user.ID))
		return models.ErrEmailAlreadyVerified
	}

	token, err := generateVerificationToken()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}
	if err := s.users.SetVerificationToken(ctx, user.ID, token, time.Now()); err != nil {
		return err
	}
	if err := s.mailer.SendVerificationMail(ctx, user.Email, token); err != nil {
		if errors.Is(err, models.ErrMailDeliveryFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", models.ErrMailDeliveryFailed, err)
	}
	s.logger.Info("Verification mail resent", zap.Int64("userID", user.ID))
	return nil
}

// VerifyAccessToken разбирает и проверяет bearer-токен.
func (s *UserService) VerifyAccessToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, models.ErrTokenMalformed
		}
		return nil, models.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	return s.users.List(ctx, skip, limit)
}

// UpdateUser применяет частичное обновление. Пароль при наличии
// хешируется перед записью.
func (s *UserService) UpdateUser(ctx context.Context, id int64, upd *models.UserUpdate) (*models.User, error) {
	if upd.Password != nil {
		hash, err := hashPassword(*upd.Password, s.cfg.PasswordPepper)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		upd.Password = &hash
	}
	if err := s.users.UpdateFields(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

func (s *UserService) createAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// generateVerificationToken возвращает URL-безопасный одноразовый токен.
func generateVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// applyPepper смешивает пароль с секретом сервера через HMAC-SHA256
// до передачи в bcrypt.
func applyPepper(password, pepper string) []byte {
	h := hmac.New(sha256.New, []byte(pepper))
	h.Write([]byte(password))
	return h.Sum(nil)
}

// hashPassword generates a bcrypt hash of the password after applying the pepper.
func hashPassword(password, pepper string) (string, error) {
	pepperedPassword := applyPepper(password, pepper)
	bytes, err := bcrypt.GenerateFromPassword(pepperedPassword, bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPasswordHash compares a password against a stored bcrypt hash.
func checkPasswordHash(password, hash, pepper string) bool {
	pepperedPassword := applyPepper(password, pepper)
	err := bcrypt.CompareHashAndPassword([]byte(hash), pepperedPassword)
	return err == nil
}

// normalizeEmail приводит email к каноническому виду перед записью.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
