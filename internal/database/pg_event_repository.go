package database

import (
	"context"
	"errors"
	"fmt"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgEventRepository implements EventRepository
var _ interfaces.EventRepository = (*pgEventRepository)(nil)

const (
	eventColumns = `id, story_id, timeline_id, location_id, parent_event_id, name, description,
        start_time, end_time, created_at, updated_at`

	getEventByIDQuery = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	listEventsQuery = `SELECT ` + eventColumns + ` FROM events ORDER BY id OFFSET $1 LIMIT $2`

	listEventsByStoryQuery = `SELECT ` + eventColumns + ` FROM events
        WHERE story_id = $1 ORDER BY start_time, id`

	createEventQuery = `
        INSERT INTO events (story_id, timeline_id, location_id, parent_event_id, name, description, start_time, end_time)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	deleteEventQuery = `DELETE FROM events WHERE id = $1`
)

type pgEventRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgEventRepository создает PostgreSQL-реализацию EventRepository.
func NewPgEventRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.EventRepository {
	return &pgEventRepository{
		db:     db,
		logger: logger.Named("PgEventRepo"),
	}
}

func (r *pgEventRepository) Create(ctx context.Context, event *models.Event) error {
	err := r.db.QueryRow(ctx, createEventQuery,
		event.StoryID, event.TimelineID, event.LocationID, event.ParentEventID,
		event.Name, event.Description, event.StartTime, event.EndTime,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create event in postgres", zap.Error(err), zap.String("name", event.Name))
		return fmt.Errorf("failed to create event in postgres: %w", err)
	}
	r.logger.Info("Event created successfully", zap.Int64("eventID", event.ID), zap.Int64("storyID", event.StoryID))
	return nil
}

func (r *pgEventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := pgxscan.Get(ctx, r.db, &event, getEventByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Event not found by ID", zap.Int64("eventID", id))
			return nil, models.ErrEventNotFound
		}
		r.logger.Error("Failed to get event by id from postgres", zap.Error(err), zap.Int64("eventID", id))
		return nil, fmt.Errorf("failed to get event by id from postgres: %w", err)
	}
	return &event, nil
}

func (r *pgEventRepository) List(ctx context.Context, skip, limit int) ([]models.Event, error) {
	events := []models.Event{}
	err := pgxscan.Select(ctx, r.db, &events, listEventsQuery, skip, limit)
	if err != nil {
		r.logger.Error("Failed to list events from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to list events from postgres: %w", err)
	}
	return events, nil
}

func (r *pgEventRepository) ListByStoryID(ctx context.Context, storyID int64) ([]models.Event, error) {
	events := []models.Event{}
	err := pgxscan.Select(ctx, r.db, &events, listEventsByStoryQuery, storyID)
	if err != nil {
		r.logger.Error("Failed to list events by story from postgres", zap.Error(err), zap.Int64("storyID", storyID))
		return nil, fmt.Errorf("failed to list events by story from postgres: %w", err)
	}
	return events, nil
}

// UpdateFields обновляет переданные (не nil) поля события.
func (r *pgEventRepository) UpdateFields(ctx context.Context, id int64, upd *models.EventUpdate) error {
	queryBase := "UPDATE events SET updated_at = CURRENT_TIMESTAMP"
	args := []interface{}{}
	argID := 1

	appendField := func(column string, value interface{}) {
		queryBase += fmt.Sprintf(", %s = $%d", column, argID)
		args = append(args, value)
		argID++
	}

	if upd.TimelineID != nil {
		appendField("timeline_id", *upd.TimelineID)
	}
	if upd.LocationID != nil {
		appendField("location_id", *upd.LocationID)
	}
	if upd.ParentEventID != nil {
		appendField("parent_event_id", *upd.ParentEventID)
	}
	if upd.Name != nil {
		appendField("name", *upd.Name)
	}
	if upd.Description != nil {
		appendField("description", *upd.Description)
	}
	if upd.StartTime != nil {
		appendField("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		appendField("end_time", *upd.EndTime)
	}

	if len(args) == 0 {
		r.logger.Info("UpdateFields called with no fields to update", zap.Int64("eventID", id))
		return nil
	}

	query := queryBase + fmt.Sprintf(" WHERE id = $%d", argID)
	args = append(args, id)

	r.logger.Debug("Executing update event query", zap.String("query", query), zap.Int64("eventID", id))
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update event fields in postgres", zap.Error(err), zap.Int64("eventID", id))
		return fmt.Errorf("failed to update event fields: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update non-existent event", zap.Int64("eventID", id))
		return models.ErrEventNotFound
	}

	return nil
}

func (r *pgEventRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, deleteEventQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete event in postgres", zap.Error(err), zap.Int64("eventID", id))
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent event", zap.Int64("eventID", id))
		return models.ErrEventNotFound
	}
	r.logger.Info("Event deleted successfully", zap.Int64("eventID", id))
	return nil
}
