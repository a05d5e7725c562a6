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

// Compile-time check to ensure pgStoryContentRepository implements StoryContentRepository
var _ interfaces.StoryContentRepository = (*pgStoryContentRepository)(nil)

const (
	storyContentColumns = `id, story_id, outline_title, content, is_deleted, created_at, updated_at`

	getStoryContentByIDQuery = `SELECT ` + storyContentColumns + ` FROM story_contents WHERE id = $1`

	listStoryContentsQuery = `SELECT ` + storyContentColumns + ` FROM story_contents
        ORDER BY id OFFSET $1 LIMIT $2`

	listStoryContentsByStoryQuery = `SELECT ` + storyContentColumns + ` FROM story_contents
        WHERE story_id = $1 ORDER BY id`

	createStoryContentQuery = `
        INSERT INTO story_contents (story_id, outline_title, content)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	lockStoryOutlineQuery = `SELECT outline FROM stories WHERE id = $1 FOR UPDATE`

	updateStoryOutlineQuery = `UPDATE stories SET outline = $1, version_time = CURRENT_TIMESTAMP WHERE id = $2`

	deleteStoryContentQuery = `DELETE FROM story_contents WHERE id = $1`
)

type pgStoryContentRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgStoryContentRepository создает PostgreSQL-реализацию StoryContentRepository.
func NewPgStoryContentRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.StoryContentRepository {
	return &pgStoryContentRepository{
		db:     db,
		logger: logger.Named("PgStoryContentRepo"),
	}
}

// Create вставляет контент и в той же транзакции проставляет story_content_id
// в пункте плана истории с совпадающим заголовком. План блокируется через
// SELECT ... FOR UPDATE, поэтому конкурирующие генерации сериализуются;
// при повторной генерации для того же заголовка ссылка перезаписывается.
func (r *pgStoryContentRepository) Create(ctx context.Context, content *models.StoryContent) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var outline *models.StoryOutline
	err = tx.QueryRow(ctx, lockStoryOutlineQuery, content.StoryID).Scan(&outline)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Story not found for content creation", zap.Int64("storyID", content.StoryID))
			return models.ErrStoryNotFound
		}
		r.logger.Error("Failed to lock story outline", zap.Error(err), zap.Int64("storyID", content.StoryID))
		return fmt.Errorf("failed to lock story outline: %w", err)
	}

	err = tx.QueryRow(ctx, createStoryContentQuery,
		content.StoryID, content.OutlineTitle, content.Content,
	).Scan(&content.ID, &content.CreatedAt, &content.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create story content in postgres", zap.Error(err), zap.Int64("storyID", content.StoryID))
		return fmt.Errorf("failed to create story content in postgres: %w", err)
	}

	if item := outline.FindItem(content.OutlineTitle); item != nil {
		item.StoryContentID = &content.ID
		if _, err := tx.Exec(ctx, updateStoryOutlineQuery, outline, content.StoryID); err != nil {
			r.logger.Error("Failed to stamp outline item with content ID", zap.Error(err),
				zap.Int64("storyID", content.StoryID), zap.String("outlineTitle", content.OutlineTitle))
			return fmt.Errorf("failed to stamp outline item: %w", err)
		}
	} else {
		r.logger.Debug("No matching outline item for content title",
			zap.Int64("storyID", content.StoryID), zap.String("outlineTitle", content.OutlineTitle))
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit story content transaction", zap.Error(err))
		return fmt.Errorf("failed to commit story content transaction: %w", err)
	}

	r.logger.Info("Story content created successfully",
		zap.Int64("contentID", content.ID), zap.Int64("storyID", content.StoryID),
		zap.String("outlineTitle", content.OutlineTitle))
	return nil
}

func (r *pgStoryContentRepository) GetByID(ctx context.Context, id int64) (*models.StoryContent, error) {
	var content models.StoryContent
	err := pgxscan.Get(ctx, r.db, &content, getStoryContentByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Story content not found by ID", zap.Int64("contentID", id))
			return nil, models.ErrStoryContentNotFound
		}
		r.logger.Error("Failed to get story content by id from postgres", zap.Error(err), zap.Int64("contentID", id))
		return nil, fmt.Errorf("failed to get story content by id from postgres: %w", err)
	}
	return &content, nil
}

func (r *pgStoryContentRepository) List(ctx context.Context, skip, limit int) ([]models.StoryContent, error) {
	contents := []models.StoryContent{}
	err := pgxscan.Select(ctx, r.db, &contents, listStoryContentsQuery, skip, limit)
	if err != nil {
		r.logger.Error("Failed to list story contents from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to list story contents from postgres: %w", err)
	}
	return contents, nil
}

func (r *pgStoryContentRepository) ListByStoryID(ctx context.Context, storyID int64) ([]models.StoryContent, error) {
	contents := []models.StoryContent{}
	err := pgxscan.Select(ctx, r.db, &contents, listStoryContentsByStoryQuery, storyID)
	if err != nil {
		r.logger.Error("Failed to list story contents by story from postgres", zap.Error(err), zap.Int64("storyID", storyID))
		return nil, fmt.Errorf("failed to list story contents by story from postgres: %w", err)
	}
	return contents, nil
}

// UpdateFields обновляет переданные (не nil) поля контента.
func (r *pgStoryContentRepository) UpdateFields(ctx context.Context, id int64, upd *models.StoryContentUpdate) error {
	queryBase := "UPDATE story_contents SET updated_at = CURRENT_TIMESTAMP"
	args := []interface{}{}
	argID := 1

	if upd.OutlineTitle != nil {
		queryBase += fmt.Sprintf(", outline_title = $%d", argID)
		args = append(args, *upd.OutlineTitle)
		argID++
	}
	if upd.Content != nil {
		queryBase += fmt.Sprintf(", content = $%d", argID)
		args = append(args, *upd.Content)
		argID++
	}

	if len(args) == 0 {
		r.logger.Info("UpdateFields called with no fields to update", zap.Int64("contentID", id))
		return nil
	}

	query := queryBase + fmt.Sprintf(" WHERE id = $%d", argID)
	args = append(args, id)

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update story content fields in postgres", zap.Error(err), zap.Int64("contentID", id))
		return fmt.Errorf("failed to update story content fields: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update non-existent story content", zap.Int64("contentID", id))
		return models.ErrStoryContentNotFound
	}

	return nil
}

// Delete удаляет контент. Ссылка из плана истории при этом не снимается:
// пункт продолжает указывать на последний сгенерированный текст раздела.
func (r *pgStoryContentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, deleteStoryContentQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete story content in postgres", zap.Error(err), zap.Int64("contentID", id))
		return fmt.Errorf("failed to delete story content: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent story content", zap.Int64("contentID", id))
		return models.ErrStoryContentNotFound
	}
	r.logger.Info("Story content deleted successfully", zap.Int64("contentID", id))
	return nil
}
