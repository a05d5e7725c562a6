package interfaces

import (
	"context"

	"genstory-server/internal/models"
)

// StoryRepository defines the interface for story persistence.
type StoryRepository interface {
	// Create inserts a new story and fills the generated ID and timestamps.
	Create(ctx context.Context, story *models.Story) error

	// GetByID retrieves a story by its ID.
	// Returns models.ErrStoryNotFound if the story does not exist.
	GetByID(ctx context.Context, id int64) (*models.Story, error)

	// List retrieves stories with skip/limit pagination.
	List(ctx context.Context, skip, limit int) ([]models.Story, error)

	// UpdateFields applies a partial update. Nil fields are left untouched.
	// Returns models.ErrStoryNotFound if the story does not exist.
	UpdateFields(ctx context.Context, id int64, upd *models.StoryUpdate) error

	// Delete removes a story. Returns models.ErrStoryNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
