package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ interfaces.UserRepository = (*pgUserRepository)(nil)

const (
	userColumns = `id, username, email, password_hash, is_active, is_verified,
        verification_token, token_created_at, created_at, updated_at`

	getUserByIDQuery = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	getUserByUsernameQuery = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	getUserByVerificationTokenQuery = `SELECT ` + userColumns + ` FROM users WHERE verification_token = $1`

	listUsersQuery = `SELECT ` + userColumns + ` FROM users ORDER BY id OFFSET $1 LIMIT $2`

	createUserQuery = `
        INSERT INTO users (username, email, password_hash, verification_token, token_created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, is_active, is_verified, created_at, updated_at`

	setVerificationTokenQuery = `UPDATE users SET verification_token = $1, token_created_at = $2 WHERE id = $3`

	markUserVerifiedQuery = `UPDATE users SET is_verified = TRUE, verification_token = NULL, token_created_at = NULL WHERE id = $1`

	deleteUserQuery = `DELETE FROM users WHERE id = $1`
)

type pgUserRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

// Create inserts a new user into the database.
func (r *pgUserRepository) Create(ctx context.Context, user *models.User) error {
	r.logger.Debug("Executing query", zap.String("query", createUserQuery), zap.String("username", user.Username), zap.String("email", user.Email))
	err := r.db.QueryRow(ctx, createUserQuery,
		user.Username, user.Email, user.PasswordHash, user.VerificationToken, user.TokenCreatedAt,
	).Scan(&user.ID, &user.IsActive, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // 23505 is unique_violation
			logFields := []zap.Field{zap.String("username", user.Username), zap.String("email", user.Email)}
			if pgErr.ConstraintName == "users_email_key" {
				r.logger.Warn("Attempted to create duplicate user by email", logFields...)
				return models.ErrEmailAlreadyExists
			}
			r.logger.Warn("Attempted to create duplicate user by username", logFields...)
			return models.ErrUserAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("username", user.Username))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}
	r.logger.Info("User created successfully", zap.Int64("userID", user.ID), zap.String("username", user.Username))
	return nil
}

func (r *pgUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := pgxscan.Get(ctx, r.db, &user, getUserByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by ID", zap.Int64("userID", id))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by id from postgres", zap.Error(err), zap.Int64("userID", id))
		return nil, fmt.Errorf("failed to get user by id from postgres: %w", err)
	}
	return &user, nil
}

func (r *pgUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := pgxscan.Get(ctx, r.db, &user, getUserByEmailQuery, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by email", zap.String("email", email))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by email from postgres", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email from postgres: %w", err)
	}
	return &user, nil
}

func (r *pgUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := pgxscan.Get(ctx, r.db, &user, getUserByUsernameQuery, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by username", zap.String("username", username))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by username from postgres", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user by username from postgres: %w", err)
	}
	return &user, nil
}

// GetByVerificationToken ищет пользователя по одноразовому токену.
// Токен после верификации очищается, поэтому отсутствие записи означает,
// что токен недействителен либо уже использован.
func (r *pgUserRepository) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := pgxscan.Get(ctx, r.db, &user, getUserByVerificationTokenQuery, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by verification token")
			return nil, models.ErrVerificationTokenInvalid
		}
		r.logger.Error("Failed to get user by verification token from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by verification token from postgres: %w", err)
	}
	return &user, nil
}

func (r *pgUserRepository) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	users := []models.User{}
	err := pgxscan.Select(ctx, r.db, &users, listUsersQuery, skip, limit)
	if err != nil {
		r.logger.Error("Failed to list users from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to list users from postgres: %w", err)
	}
	return users, nil
}

// UpdateFields обновляет переданные (не nil) поля пользователя.
// Password здесь не обрабатывается: сервис хеширует его заранее и передает
// через отдельный вызов либо через этот метод уже в виде хеша не передает вовсе.
func (r *pgUserRepository) UpdateFields(ctx context.Context, id int64, upd *models.UserUpdate) error {
	queryBase := "UPDATE users SET updated_at = CURRENT_TIMESTAMP"
	args := []interface{}{}
	argID := 1

	if upd.Username != nil {
		queryBase += fmt.Sprintf(", username = $%d", argID)
		args = append(args, *upd.Username)
		argID++
	}
	if upd.Email != nil {
		queryBase += fmt.Sprintf(", email = $%d", argID)
		args = append(args, *upd.Email)
		argID++
	}
	if upd.Password != nil {
		// Сервис передает сюда уже готовый хеш.
		queryBase += fmt.Sprintf(", password_hash = $%d", argID)
		args = append(args, *upd.Password)
		argID++
	}
	if upd.IsActive != nil {
		queryBase += fmt.Sprintf(", is_active = $%d", argID)
		args = append(args, *upd.IsActive)
		argID++
	}

	if len(args) == 0 {
		r.logger.Info("UpdateFields called with no fields to update", zap.Int64("userID", id))
		return nil
	}

	query := queryBase + fmt.Sprintf(" WHERE id = $%d", argID)
	args = append(args, id)

	r.logger.Debug("Executing update user query", zap.String("query", query), zap.Int64("userID", id))
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "users_email_key" {
				r.logger.Warn("Attempted to update user with duplicate email", zap.Int64("userID", id))
				return models.ErrEmailAlreadyExists
			}
			r.logger.Warn("Attempted to update user with duplicate username", zap.Int64("userID", id))
			return models.ErrUserAlreadyExists
		}
		r.logger.Error("Failed to update user fields in postgres", zap.Error(err), zap.Int64("userID", id))
		return fmt.Errorf("failed to update user fields: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update non-existent user", zap.Int64("userID", id))
		return models.ErrUserNotFound
	}

	r.logger.Info("User fields updated successfully", zap.Int64("userID", id))
	return nil
}

// SetVerificationToken сохраняет свежий одноразовый токен и время его выдачи.
func (r *pgUserRepository) SetVerificationToken(ctx context.Context, id int64, token string, createdAt time.Time) error {
	cmdTag, err := r.db.Exec(ctx, setVerificationTokenQuery, token, createdAt, id)
	if err != nil {
		r.logger.Error("Failed to set verification token in postgres", zap.Error(err), zap.Int64("userID", id))
		return fmt.Errorf("failed to set verification token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to set verification token for non-existent user", zap.Int64("userID", id))
		return models.ErrUserNotFound
	}
	return nil
}

// MarkVerified помечает пользователя верифицированным и очищает токен,
// делая его одноразовым.
func (r *pgUserRepository) MarkVerified(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, markUserVerifiedQuery, id)
	if err != nil {
		r.logger.Error("Failed to mark user verified in postgres", zap.Error(err), zap.Int64("userID", id))
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to mark non-existent user verified", zap.Int64("userID", id))
		return models.ErrUserNotFound
	}
	r.logger.Info("User marked verified", zap.Int64("userID", id))
	return nil
}

// Delete удаляет пользователя. Используется в том числе как компенсация
// при сбое отправки письма верификации после регистрации.
func (r *pgUserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, deleteUserQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete user in postgres", zap.Error(err), zap.Int64("userID", id))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent user", zap.Int64("userID", id))
		return models.ErrUserNotFound
	}
	r.logger.Info("User deleted successfully", zap.Int64("userID", id))
	return nil
}
