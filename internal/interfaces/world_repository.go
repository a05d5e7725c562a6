package interfaces

import (
	"context"

	"genstory-server/internal/models"
)

// EventRepository defines the interface for event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error

	// GetByID returns models.ErrEventNotFound if the event does not exist.
	GetByID(ctx context.Context, id int64) (*models.Event, error)

	List(ctx context.Context, skip, limit int) ([]models.Event, error)

	// ListByStoryID retrieves all events of a story ordered by start_time.
	ListByStoryID(ctx context.Context, storyID int64) ([]models.Event, error)

	UpdateFields(ctx context.Context, id int64, upd *models.EventUpdate) error

	Delete(ctx context.Context, id int64) error
}

// TimelineRepository defines the interface for timeline persistence.
// A story owns at most one timeline (unique story_id).
type TimelineRepository interface {
	Create(ctx context.Context, timeline *models.Timeline) error

	// GetByID returns models.ErrTimelineNotFound if the timeline does not exist.
	GetByID(ctx context.Context, id int64) (*models.Timeline, error)

	// GetByStoryID retrieves the timeline of a story.
	GetByStoryID(ctx context.Context, storyID int64) (*models.Timeline, error)

	List(ctx context.Context, skip, limit int) ([]models.Timeline, error)

	UpdateFields(ctx context.Context, id int64, upd *models.TimelineUpdate) error

	Delete(ctx context.Context, id int64) error
}

// LocationRepository defines the interface for location persistence.
type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error

	// GetByID returns models.ErrLocationNotFound if the location does not exist.
	GetByID(ctx context.Context, id int64) (*models.Location, error)

	List(ctx context.Context, skip, limit int) ([]models.Location, error)

	ListByStoryID(ctx context.Context, storyID int64) ([]models.Location, error)

	UpdateFields(ctx context.Context, id int64, upd *models.LocationUpdate) error

	Delete(ctx context.Context, id int64) error
}
