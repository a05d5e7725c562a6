package interfaces

import (
	"context"

	"genstory-server/internal/models"
)

// StoryContentRepository defines the interface for generated section prose.
type StoryContentRepository interface {
	// Create inserts the content and stamps the matching outline item of the
	// owning story with the new content ID. Both writes happen in a single
	// transaction; on repeated generation for the same title the outline
	// reference is overwritten (last write wins).
	Create(ctx context.Context, content *models.StoryContent) error

	// GetByID returns models.ErrStoryContentNotFound if absent.
	GetByID(ctx context.Context, id int64) (*models.StoryContent, error)

	List(ctx context.Context, skip, limit int) ([]models.StoryContent, error)

	ListByStoryID(ctx context.Context, storyID int64) ([]models.StoryContent, error)

	UpdateFields(ctx context.Context, id int64, upd *models.StoryContentUpdate) error

	Delete(ctx context.Context, id int64) error
}
