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

// Compile-time check to ensure pgLocationRepository implements LocationRepository
var _ interfaces.LocationRepository = (*pgLocationRepository)(nil)

const (
	locationColumns = `id, story_id, name, description, location_type, x, y, created_at, updated_at`

	getLocationByIDQuery = `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`

	listLocationsQuery = `SELECT ` + locationColumns + ` FROM locations ORDER BY id OFFSET $1 LIMIT $2`

	listLocationsByStoryQuery = `SELECT ` + locationColumns + ` FROM locations WHERE story_id = $1 ORDER BY id`

	createLocationQuery = `
        INSERT INTO locations (story_id, name, description, location_type, x, y)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	deleteLocationQuery = `DELETE FROM locations WHERE id = $1`
)

type pgLocationRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgLocationRepository создает PostgreSQL-реализацию LocationRepository.
func NewPgLocationRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.LocationRepository {
	return &pgLocationRepository{
		db:     db,
		logger: logger.Named("PgLocationRepo"),
	}
}

func (r *pgLocationRepository) Create(ctx context.Context, location *models.Location) error {
	err := r.db.QueryRow(ctx, createLocationQuery,
		location.StoryID, location.Name, location.Description, location.LocationType, location.X, location.Y,
	).Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create location in postgres", zap.Error(err), zap.String("name", location.Name))
		return fmt.Errorf("failed to create location in postgres: %w", err)
	}
	r.logger.Info("Location created successfully", zap.Int64("locationID", location.ID), zap.Int64("storyID", location.StoryID))
	return nil
}

func (r *pgLocationRepository) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	var location models.Location
	err := pgxscan.Get(ctx, r.db, &location, getLocationByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Location not found by ID", zap.Int64("locationID", id))
			return nil, models.ErrLocationNotFound
		}
		r.logger.Error("Failed to get location by id from postgres", zap.Error(err), zap.Int64("locationID", id))
		return nil, fmt.Errorf("failed to get location by id from postgres: %w", err)
	}
	return &location, nil
}

func (r *pgLocationRepository) List(ctx context.Context, skip, limit int) ([]models.Location, error) {
	locations := []models.Location{}
	err := pgxscan.Select(ctx, r.db, &locations, listLocationsQuery, skip, limit)
	if err != nil {
		r.logger.Error("Failed to list locations from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to list locations from postgres: %w", err)
	}
	return locations, nil
}

func (r *pgLocationRepository) ListByStoryID(ctx context.Context, storyID int64) ([]models.Location, error) {
	locations := []models.Location{}
	err := pgxscan.Select(ctx, r.db, &locations, listLocationsByStoryQuery, storyID)
	if err != nil {
		r.logger.Error("Failed to list locations by story from postgres", zap.Error(err), zap.Int64("storyID", storyID))
		return nil, fmt.Errorf("failed to list locations by story from postgres: %w", err)
	}
	return locations, nil
}

// UpdateFields обновляет переданные (не nil) поля локации.
func (r *pgLocationRepository) UpdateFields(ctx context.Context, id int64, upd *models.LocationUpdate) error {
	queryBase := "UPDATE locations SET updated_at = CURRENT_TIMESTAMP"
	args := []interface{}{}
	argID := 1

	appendField := func(column string, value interface{}) {
		queryBase += fmt.Sprintf(", %s = $%d", column, argID)
		args = append(args, value)
		argID++
	}

	if upd.Name != nil {
		appendField("name", *upd.Name)
	}
	if upd.Description != nil {
		appendField("description", *upd.Description)
	}
	if upd.LocationType != nil {
		appendField("location_type", *upd.LocationType)
	}
	if upd.X != nil {
		appendField("x", *upd.X)
	}
	if upd.Y != nil {
		appendField("y", *upd.Y)
	}

	if len(args) == 0 {
		r.logger.Info("UpdateFields called with no fields to update", zap.Int64("locationID", id))
		return nil
	}

	query := queryBase + fmt.Sprintf(" WHERE id = $%d", argID)
	args = append(args, id)

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update location fields in postgres", zap.Error(err), zap.Int64("locationID", id))
		return fmt.Errorf("failed to update location fields: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update non-existent location", zap.Int64("locationID", id))
		return models.ErrLocationNotFound
	}

	return nil
}

func (r *pgLocationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, deleteLocationQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete location in postgres", zap.Error(err), zap.Int64("locationID", id))
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent location", zap.Int64("locationID", id))
		return models.ErrLocationNotFound
	}
	r.logger.Info("Location deleted successfully", zap.Int64("locationID", id))
	return nil
}
