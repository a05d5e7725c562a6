package models

import "time"

// Event - событие истории. Опционально привязано к таймлайну и локации,
// поддерживает иерархию вложенных событий через ParentEventID.
type Event struct {
	ID            int64      `json:"id"`
	StoryID       int64      `json:"story_id"`
	TimelineID    *int64     `json:"timeline_id,omitempty"`
	LocationID    *int64     `json:"location_id,omitempty"`
	ParentEventID *int64     `json:"parent_event_id,omitempty"`
	Name          string     `json:"name"`
	Description   *string    `json:"description,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// EventCreate - данные для создания события.
type EventCreate struct {
	StoryID       int64      `json:"story_id" binding:"required"`
	TimelineID    *int64     `json:"timeline_id"`
	LocationID    *int64     `json:"location_id"`
	ParentEventID *int64     `json:"parent_event_id"`
	Name          string     `json:"name" binding:"required"`
	Description   *string    `json:"description"`
	StartTime     time.Time  `json:"start_time" binding:"required"`
	EndTime       *time.Time `json:"end_time"`
}

// EventUpdate - частичное обновление события.
type EventUpdate struct {
	TimelineID    *int64     `json:"timeline_id"`
	LocationID    *int64     `json:"location_id"`
	ParentEventID *int64     `json:"parent_event_id"`
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
}

// Timeline - таймлайн истории. У истории может быть не более одного таймлайна.
type Timeline struct {
	ID          int64     `json:"id"`
	StoryID     int64     `json:"story_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TimelineCreate - данные для создания таймлайна.
type TimelineCreate struct {
	StoryID     int64   `json:"story_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// TimelineUpdate - частичное обновление таймлайна.
type TimelineUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Location - локация в мире истории с типом и 2-D координатами.
type Location struct {
	ID           int64         `json:"id"`
	StoryID      int64         `json:"story_id"`
	Name         string        `json:"name"`
	Description  *string       `json:"description,omitempty"`
	LocationType *LocationType `json:"location_type,omitempty"`
	X            *float64      `json:"x,omitempty"`
	Y            *float64      `json:"y,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// LocationCreate - данные для создания локации.
type LocationCreate struct {
	StoryID      int64         `json:"story_id" binding:"required"`
	Name         string        `json:"name" binding:"required"`
	Description  *string       `json:"description"`
	LocationType *LocationType `json:"location_type"`
	X            *float64      `json:"x"`
	Y            *float64      `json:"y"`
}

// LocationUpdate - частичное обновление локации.
type LocationUpdate struct {
	Name         *string       `json:"name"`
	Description  *string       `json:"description"`
	LocationType *LocationType `json:"location_type"`
	X            *float64      `json:"x"`
	Y            *float64      `json:"y"`
}
