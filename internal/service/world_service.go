package service

import (
	"context"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"go.uber.org/zap"
)

// EventService управляет событиями историй.
type EventService struct {
	events  interfaces.EventRepository
	stories interfaces.StoryRepository
	logger  *zap.Logger
}

// NewEventService создает сервис событий.
func NewEventService(events interfaces.EventRepository, stories interfaces.StoryRepository, logger *zap.Logger) *EventService {
	return &EventService{
		events:  events,
		stories: stories,
		logger:  logger.Named("EventService"),
	}
}

func (s *EventService) Create(ctx context.Context, create *models.EventCreate) (*models.Event, error) {
	if _, err := s.stories.GetByID(ctx, create.StoryID); err != nil {
		return nil, err
	}
	event := &models.Event{
		StoryID:       create.StoryID,
		TimelineID:    create.TimelineID,
		LocationID:    create.LocationID,
		ParentEventID: create.ParentEventID,
		Name:          create.Name,
		Description:   create.Description,
		StartTime:     create.StartTime,
		EndTime:       create.EndTime,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *EventService) List(ctx context.Context, skip, limit int) ([]models.Event, error) {
	return s.events.List(ctx, skip, limit)
}

func (s *EventService) ListByStory(ctx context.Context, storyID int64) ([]models.Event, error) {
	if _, err := s.stories.GetByID(ctx, storyID); err != nil {
		return nil, err
	}
	return s.events.ListByStoryID(ctx, storyID)
}

func (s *EventService) Update(ctx context.Context, id int64, upd *models.EventUpdate) (*models.Event, error) {
	if err := s.events.UpdateFields(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, id)
}

func (s *EventService) Delete(ctx context.Context, id int64) error {
	return s.events.Delete(ctx, id)
}

// TimelineService управляет таймлайнами. У истории не более одного таймлайна.
type TimelineService struct {
	timelines interfaces.TimelineRepository
	stories   interfaces.StoryRepository
	logger    *zap.Logger
}

// NewTimelineService создает сервис таймлайнов.
func NewTimelineService(timelines interfaces.TimelineRepository, stories interfaces.StoryRepository, logger *zap.Logger) *TimelineService {
	return &TimelineService{
		timelines: timelines,
		stories:   stories,
		logger:    logger.Named("TimelineService"),
	}
}

func (s *TimelineService) Create(ctx context.Context, create *models.TimelineCreate) (*models.Timeline, error) {
	if _, err := s.stories.GetByID(ctx, create.StoryID); err != nil {
		return nil, err
	}
	timeline := &models.Timeline{
		StoryID:     create.StoryID,
		Name:        create.Name,
		Description: create.Description,
	}
	if err := s.timelines.Create(ctx, timeline); err != nil {
		return nil, err
	}
	return timeline, nil
}

func (s *TimelineService) Get(ctx context.Context, id int64) (*models.Timeline, error) {
	return s.timelines.GetByID(ctx, id)
}

func (s *TimelineService) GetByStory(ctx context.Context, storyID int64) (*models.Timeline, error) {
	return s.timelines.GetByStoryID(ctx, storyID)
}

func (s *TimelineService) List(ctx context.Context, skip, limit int) ([]models.Timeline, error) {
	return s.timelines.List(ctx, skip, limit)
}

func (s *TimelineService) Update(ctx context.Context, id int64, upd *models.TimelineUpdate) (*models.Timeline, error) {
	if err := s.timelines.UpdateFields(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.timelines.GetByID(ctx, id)
}

func (s *TimelineService) Delete(ctx context.Context, id int64) error {
	return s.timelines.Delete(ctx, id)
}

// LocationService управляет локациями.
type LocationService struct {
	locations interfaces.LocationRepository
	stories   interfaces.StoryRepository
	logger    *zap.Logger
}

// NewLocationService создает сервис локаций.
func NewLocationService(locations interfaces.LocationRepository, stories interfaces.StoryRepository, logger *zap.Logger) *LocationService {
	return &LocationService{
		locations: locations,
		stories:   stories,
		logger:    logger.Named("LocationService"),
	}
}

func (s *LocationService) Create(ctx context.Context, create *models.LocationCreate) (*models.Location, error) {
	if _, err := s.stories.GetByID(ctx, create.StoryID); err != nil {
		return nil, err
	}
	location := &models.Location{
		StoryID:      create.StoryID,
		Name:         create.Name,
		Description:  create.Description,
		LocationType: create.LocationType,
		X:            create.X,
		Y:            create.Y,
	}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) Get(ctx context.Context, id int64) (*models.Location, error) {
	return s.locations.GetByID(ctx, id)
}

func (s *LocationService) List(ctx context.Context, skip, limit int) ([]models.Location, error) {
	return s.locations.List(ctx, skip, limit)
}

func (s *LocationService) ListByStory(ctx context.Context, storyID int64) ([]models.Location, error) {
	if _, err := s.stories.GetByID(ctx, storyID); err != nil {
		return nil, err
	}
	return s.locations.ListByStoryID(ctx, storyID)
}

func (s *LocationService) Update(ctx context.Context, id int64, upd *models.LocationUpdate) (*models.Location, error) {
	if err := s.locations.UpdateFields(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.locations.GetByID(ctx, id)
}

func (s *LocationService) Delete(ctx context.Context, id int64) error {
	return s.locations.Delete(ctx, id)
}
