package database

import (
	"context"
	"errors"
	"fmt"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgTimelineRepository implements TimelineRepository
var _ interfaces.TimelineRepository = (*pgTimelineRepository)(nil)

const (
	timelineColumns = `id, story_id, name, description, created_at, updated_at`

	getTimelineByIDQuery = `SELECT ` + timelineColumns + ` FROM timelines WHERE id = $1`

	getTimelineByStoryQuery = `SELECT ` + timelineColumns + ` FROM timelines WHERE story_id = $1`

	listTimelinesQuery = `SELECT ` + timelineColumns + ` FROM timelines ORDER BY id OFFSET $1 LIMIT $2`

	createTimelineQuery = `
        INSERT INTO timelines (story_id, name, description)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	deleteTimelineQuery = `DELETE FROM timelines WHERE id = $1`
)

type pgTimelineRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgTimelineRepository создает PostgreSQL-реализацию TimelineRepository.
func NewPgTimelineRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.TimelineRepository {
	return &pgTimelineRepository{
		db:     db,
		logger: logger.Named("PgTimelineRepo"),
	}
}

// Create вставляет таймлайн. Уникальность story_id гарантирует,
// что у истории будет не более одного таймлайна.
func (r *pgTimelineRepository) Create(ctx context.Context, timeline *models.Timeline) error {
	err := r.db.QueryRow(ctx, createTimelineQuery,
		timeline.StoryID, timeline.Name, timeline.Description,
	).Scan(&timeline.ID, &timeline.CreatedAt, &timeline.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "timelines_story_id_key" {
			r.logger.Warn("Attempted to create second timeline for story", zap.Int64("storyID", timeline.StoryID))
			return models.ErrTimelineAlreadyExists
		}
		r.logger.Error("Failed to create timeline in postgres", zap.Error(err), zap.Int64("storyID", timeline.StoryID))
		return fmt.Errorf("failed to create timeline in postgres: %w", err)
	}
	r.logger.Info("Timeline created successfully", zap.Int64("timelineID", timeline.ID), zap.Int64("storyID", timeline.StoryID))
	return nil
}

func (r *pgTimelineRepository) GetByID(ctx context.Context, id int64) (*models.Timeline, error) {
	var timeline models.Timeline
	err := pgxscan.Get(ctx, r.db, &timeline, getTimelineByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Timeline not found by ID", zap.Int64("timelineID", id))
			return nil, models.ErrTimelineNotFound
		}
		r.logger.Error("Failed to get timeline by id from postgres", zap.Error(err), zap.Int64("timelineID", id))
		return nil, fmt.Errorf("failed to get timeline by id from postgres: %w", err)
	}
	return &timeline, nil
}

func (r *pgTimelineRepository) GetByStoryID(ctx context.Context, storyID int64) (*models.Timeline, error) {
	var timeline models.Timeline
	err := pgxscan.Get(ctx, r.db, &timeline, getTimelineByStoryQuery, storyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Timeline not found by story ID", zap.Int64("storyID", storyID))
			return nil, models.ErrTimelineNotFound
		}
		r.logger.Error("Failed to get timeline by story from postgres", zap.Error(err), zap.Int64("storyID", storyID))
		return nil, fmt.Errorf("failed to get timeline by story from postgres: %w", err)
	}
	return &timeline, nil
}

func (r *pgTimelineRepository) List(ctx context.Context, skip, limit int) ([]models.Timeline, error) {
	timelines := []models.Timeline{}
	err := pgxscan.Select(ctx, r.db, &timelines, listTimelinesQuery, skip, limit)
	if err != nil {
		r.logger.Error("Failed to list timelines from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to list timelines from postgres: %w", err)
	}
	return timelines, nil
}

// UpdateFields обновляет переданные (не nil) поля таймлайна.
func (r *pgTimelineRepository) UpdateFields(ctx context.Context, id int64, upd *models.TimelineUpdate) error {
	queryBase := "UPDATE timelines SET updated_at = CURRENT_TIMESTAMP"
	args := []interface{}{}
	argID := 1

	if upd.Name != nil {
		queryBase += fmt.Sprintf(", name = $%d", argID)
		args = append(args, *upd.Name)
		argID++
	}
	if upd.Description != nil {
		queryBase += fmt.Sprintf(", description = $%d", argID)
		args = append(args, *upd.Description)
		argID++
	}

	if len(args) == 0 {
		r.logger.Info("UpdateFields called with no fields to update", zap.Int64("timelineID", id))
		return nil
	}

	query := queryBase + fmt.Sprintf(" WHERE id = $%d", argID)
	args = append(args, id)

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update timeline fields in postgres", zap.Error(err), zap.Int64("timelineID", id))
		return fmt.Errorf("failed to update timeline fields: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update non-existent timeline", zap.Int64("timelineID", id))
		return models.ErrTimelineNotFound
	}

	return nil
}

func (r *pgTimelineRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, deleteTimelineQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete timeline in postgres", zap.Error(err), zap.Int64("timelineID", id))
		return fmt.Errorf("failed to delete timeline: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent timeline", zap.Int64("timelineID", id))
		return models.ErrTimelineNotFound
	}
	r.logger.Info("Timeline deleted successfully", zap.Int64("timelineID", id))
	return nil
}
