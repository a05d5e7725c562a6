package interfaces

import (
	"context"
	"time"

	"genstory-server/internal/models"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create inserts a new user. Returns models.ErrEmailAlreadyExists or
	// models.ErrUserAlreadyExists on unique constraint violations.
	Create(ctx context.Context, user *models.User) error

	// GetByID returns models.ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByEmail returns models.ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByUsername returns models.ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByVerificationToken looks a user up by the one-time email token.
	// Returns models.ErrVerificationTokenInvalid if no user carries the token.
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)

	List(ctx context.Context, skip, limit int) ([]models.User, error)

	// UpdateFields applies a partial update. Nil fields are left untouched.
	UpdateFields(ctx context.Context, id int64, upd *models.UserUpdate) error

	// SetVerificationToken stores a fresh one-time token with its issue time.
	SetVerificationToken(ctx context.Context, id int64, token string, createdAt time.Time) error

	// MarkVerified sets is_verified and clears the one-time token.
	MarkVerified(ctx context.Context, id int64) error

	// Delete removes a user. Returns models.ErrUserNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
