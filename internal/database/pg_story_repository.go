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

// Compile-time check to ensure pgStoryRepository implements StoryRepository
var _ interfaces.StoryRepository = (*pgStoryRepository)(nil)

const (
	storyColumns = `id, title, creator_user_id, author, genre, language, summary, outline,
        ssf, version_time, version_text, story_template_id, is_deleted, created_at, updated_at`

	getStoryByIDQuery = `SELECT ` + storyColumns + ` FROM stories WHERE id = $1`

	listStoriesQuery = `SELECT ` + storyColumns + ` FROM stories ORDER BY id OFFSET $1 LIMIT $2`

	createStoryQuery = `
        INSERT INTO stories (title, creator_user_id, author, genre, language, summary, outline, ssf, version_text, story_template_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, version_time, created_at, updated_at`

	// Флаг is_deleted унаследован от формата данных, но удаление жесткое:
	// ни один путь чтения флаг не учитывает.
	deleteStoryQuery = `DELETE FROM stories WHERE id = $1`
)

type pgStoryRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgStoryRepository создает PostgreSQL-реализацию StoryRepository.
func NewPgStoryRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.StoryRepository {
	return &pgStoryRepository{
		db:     db,
		logger: logger.Named("PgStoryRepo"),
	}
}

// Create вставляет новую историю и заполняет сгенерированные поля.
func (r *pgStoryRepository) Create(ctx context.Context, story *models.Story) error {
	r.logger.Debug("Executing query", zap.String("query", createStoryQuery), zap.String("title", story.Title))
	err := r.db.QueryRow(ctx, createStoryQuery,
		story.Title, story.CreatorUserID, story.Author, story.Genre, story.Language,
		story.Summary, story.Outline, story.SSF, story.VersionText, story.StoryTemplateID,
	).Scan(&story.ID, &story.VersionTime, &story.CreatedAt, &story.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create story in postgres", zap.Error(err), zap.String("title", story.Title))
		return fmt.Errorf("failed to create story in postgres: %w", err)
	}
	r.logger.Info("Story created successfully", zap.Int64("storyID", story.ID), zap.String("title", story.Title))
	return nil
}

func (r *pgStoryRepository) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	var story models.Story
	err := pgxscan.Get(ctx, r.db, &story, getStoryByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Story not found by ID", zap.Int64("storyID", id))
			return nil, models.ErrStoryNotFound
		}
		r.logger.Error("Failed to get story by id from postgres", zap.Error(err), zap.Int64("storyID", id))
		return nil, fmt.Errorf("failed to get story by id from postgres: %w", err)
	}
	return &story, nil
}

func (r *pgStoryRepository) List(ctx context.Context, skip, limit int) ([]models.Story, error) {
	stories := []models.Story{}
	err := pgxscan.Select(ctx, r.db, &stories, listStoriesQuery, skip, limit)
	if err != nil {
		r.logger.Error("Failed to list stories from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to list stories from postgres: %w", err)
	}
	return stories, nil
}

// UpdateFields обновляет переданные (не nil) поля истории.
// Каждое обновление продвигает version_time.
func (r *pgStoryRepository) UpdateFields(ctx context.Context, id int64, upd *models.StoryUpdate) error {
	queryBase := "UPDATE stories SET version_time = CURRENT_TIMESTAMP"
	args := []interface{}{}
	argID := 1

	appendField := func(column string, value interface{}) {
		queryBase += fmt.Sprintf(", %s = $%d", column, argID)
		args = append(args, value)
		argID++
	}

	if upd.Title != nil {
		appendField("title", *upd.Title)
	}
	if upd.Author != nil {
		appendField("author", *upd.Author)
	}
	if upd.Genre != nil {
		appendField("genre", *upd.Genre)
	}
	if upd.Language != nil {
		appendField("language", *upd.Language)
	}
	if upd.Summary != nil {
		appendField("summary", *upd.Summary)
	}
	if upd.Outline != nil {
		appendField("outline", upd.Outline)
	}
	if upd.SSF != nil {
		appendField("ssf", upd.SSF)
	}
	if upd.VersionText != nil {
		appendField("version_text", *upd.VersionText)
	}
	if upd.StoryTemplateID != nil {
		appendField("story_template_id", *upd.StoryTemplateID)
	}

	if len(args) == 0 {
		r.logger.Info("UpdateFields called with no fields to update", zap.Int64("storyID", id))
		return nil
	}

	query := queryBase + fmt.Sprintf(" WHERE id = $%d", argID)
	args = append(args, id)

	r.logger.Debug("Executing update story query", zap.String("query", query), zap.Int64("storyID", id))
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update story fields in postgres", zap.Error(err), zap.Int64("storyID", id))
		return fmt.Errorf("failed to update story fields: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update non-existent story", zap.Int64("storyID", id))
		return models.ErrStoryNotFound
	}

	r.logger.Info("Story fields updated successfully", zap.Int64("storyID", id))
	return nil
}

func (r *pgStoryRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, deleteStoryQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete story in postgres", zap.Error(err), zap.Int64("storyID", id))
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent story", zap.Int64("storyID", id))
		return models.ErrStoryNotFound
	}
	r.logger.Info("Story deleted successfully", zap.Int64("storyID", id))
	return nil
}
