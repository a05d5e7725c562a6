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

// Compile-time check to ensure pgCharacterRepository implements CharacterRepository
var _ interfaces.CharacterRepository = (*pgCharacterRepository)(nil)

const (
	characterColumns = `id, story_id, name, is_main, gender, mbti, age, description, appearance,
        personality, backstory, arc, quirks, is_deleted, created_at, updated_at`

	getCharacterByIDQuery = `SELECT ` + characterColumns + ` FROM characters WHERE id = $1`

	listCharactersQuery = `SELECT ` + characterColumns + ` FROM characters ORDER BY id OFFSET $1 LIMIT $2`

	listCharactersByStoryQuery = `SELECT ` + characterColumns + ` FROM characters
        WHERE story_id = $1 ORDER BY id`

	createCharacterQuery = `
        INSERT INTO characters (story_id, name, is_main, gender, mbti, age, description, appearance, personality, backstory, arc, quirks)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`

	deleteCharacterQuery = `DELETE FROM characters WHERE id = $1`

	linkCharacterEventQuery = `
        INSERT INTO character_events (character_id, event_id, role, importance, actions, emotions)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (character_id, event_id) DO UPDATE SET
            role = EXCLUDED.role,
            importance = EXCLUDED.importance,
            actions = EXCLUDED.actions,
            emotions = EXCLUDED.emotions`

	listCharacterEventLinksQuery = `SELECT character_id, event_id, role, importance, actions, emotions
        FROM character_events WHERE character_id = $1 ORDER BY event_id`

	setCharacterRelationshipQuery = `
        INSERT INTO character_relationships (character_id, related_character_id, relationship_type, description, strength)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (character_id, related_character_id) DO UPDATE SET
            relationship_type = EXCLUDED.relationship_type,
            description = EXCLUDED.description,
            strength = EXCLUDED.strength`

	listCharacterRelationshipsQuery = `SELECT character_id, related_character_id, relationship_type, description, strength
        FROM character_relationships WHERE character_id = $1 ORDER BY related_character_id`
)

type pgCharacterRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgCharacterRepository создает PostgreSQL-реализацию CharacterRepository.
func NewPgCharacterRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.CharacterRepository {
	return &pgCharacterRepository{
		db:     db,
		logger: logger.Named("PgCharacterRepo"),
	}
}

func (r *pgCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	err := r.db.QueryRow(ctx, createCharacterQuery,
		character.StoryID, character.Name, character.IsMain, character.Gender, character.MBTI,
		character.Age, character.Description, character.Appearance, character.Personality,
		character.Backstory, character.Arc, character.Quirks,
	).Scan(&character.ID, &character.CreatedAt, &character.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create character in postgres", zap.Error(err), zap.String("name", character.Name))
		return fmt.Errorf("failed to create character in postgres: %w", err)
	}
	r.logger.Info("Character created successfully", zap.Int64("characterID", character.ID), zap.Int64("storyID", character.StoryID))
	return nil
}

func (r *pgCharacterRepository) GetByID(ctx context.Context, id int64) (*models.Character, error) {
	var character models.Character
	err := pgxscan.Get(ctx, r.db, &character, getCharacterByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Character not found by ID", zap.Int64("characterID", id))
			return nil, models.ErrCharacterNotFound
		}
		r.logger.Error("Failed to get character by id from postgres", zap.Error(err), zap.Int64("characterID", id))
		return nil, fmt.Errorf("failed to get character by id from postgres: %w", err)
	}
	return &character, nil
}

func (r *pgCharacterRepository) List(ctx context.Context, skip, limit int) ([]models.Character, error) {
	characters := []models.Character{}
	err := pgxscan.Select(ctx, r.db, &characters, listCharactersQuery, skip, limit)
	if err != nil {
		r.logger.Error("Failed to list characters from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to list characters from postgres: %w", err)
	}
	return characters, nil
}

func (r *pgCharacterRepository) ListByStoryID(ctx context.Context, storyID int64) ([]models.Character, error) {
	characters := []models.Character{}
	err := pgxscan.Select(ctx, r.db, &characters, listCharactersByStoryQuery, storyID)
	if err != nil {
		r.logger.Error("Failed to list characters by story from postgres", zap.Error(err), zap.Int64("storyID", storyID))
		return nil, fmt.Errorf("failed to list characters by story from postgres: %w", err)
	}
	return characters, nil
}

// UpdateFields обновляет переданные (не nil) поля персонажа.
func (r *pgCharacterRepository) UpdateFields(ctx context.Context, id int64, upd *models.CharacterUpdate) error {
	queryBase := "UPDATE characters SET updated_at = CURRENT_TIMESTAMP"
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
	if upd.IsMain != nil {
		appendField("is_main", *upd.IsMain)
	}
	if upd.Gender != nil {
		appendField("gender", *upd.Gender)
	}
	if upd.MBTI != nil {
		appendField("mbti", *upd.MBTI)
	}
	if upd.Age != nil {
		appendField("age", *upd.Age)
	}
	if upd.Description != nil {
		appendField("description", *upd.Description)
	}
	if upd.Appearance != nil {
		appendField("appearance", *upd.Appearance)
	}
	if upd.Personality != nil {
		appendField("personality", *upd.Personality)
	}
	if upd.Backstory != nil {
		appendField("backstory", *upd.Backstory)
	}
	if upd.Arc != nil {
		appendField("arc", *upd.Arc)
	}
	if upd.Quirks != nil {
		appendField("quirks", *upd.Quirks)
	}

	if len(args) == 0 {
		r.logger.Info("UpdateFields called with no fields to update", zap.Int64("characterID", id))
		return nil
	}

	query := queryBase + fmt.Sprintf(" WHERE id = $%d", argID)
	args = append(args, id)

	r.logger.Debug("Executing update character query", zap.String("query", query), zap.Int64("characterID", id))
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update character fields in postgres", zap.Error(err), zap.Int64("characterID", id))
		return fmt.Errorf("failed to update character fields: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update non-existent character", zap.Int64("characterID", id))
		return models.ErrCharacterNotFound
	}

	r.logger.Info("Character fields updated successfully", zap.Int64("characterID", id))
	return nil
}

func (r *pgCharacterRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, deleteCharacterQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete character in postgres", zap.Error(err), zap.Int64("characterID", id))
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent character", zap.Int64("characterID", id))
		return models.ErrCharacterNotFound
	}
	r.logger.Info("Character deleted successfully", zap.Int64("characterID", id))
	return nil
}

// LinkEvent привязывает персонажа к событию (upsert атрибутов участия).
func (r *pgCharacterRepository) LinkEvent(ctx context.Context, link *models.CharacterEvent) error {
	if link.Importance == 0 {
		link.Importance = 1
	}
	_, err := r.db.Exec(ctx, linkCharacterEventQuery,
		link.CharacterID, link.EventID, link.Role, link.Importance, link.Actions, link.Emotions)
	if err != nil {
		r.logger.Error("Failed to link character to event", zap.Error(err),
			zap.Int64("characterID", link.CharacterID), zap.Int64("eventID", link.EventID))
		return fmt.Errorf("failed to link character to event: %w", err)
	}
	return nil
}

func (r *pgCharacterRepository) ListEventLinks(ctx context.Context, characterID int64) ([]models.CharacterEvent, error) {
	links := []models.CharacterEvent{}
	err := pgxscan.Select(ctx, r.db, &links, listCharacterEventLinksQuery, characterID)
	if err != nil {
		r.logger.Error("Failed to list character event links", zap.Error(err), zap.Int64("characterID", characterID))
		return nil, fmt.Errorf("failed to list character event links: %w", err)
	}
	return links, nil
}

// SetRelationship создает или обновляет связь между персонажами.
func (r *pgCharacterRepository) SetRelationship(ctx context.Context, rel *models.CharacterRelationship) error {
	if rel.Strength == 0 {
		rel.Strength = 5
	}
	_, err := r.db.Exec(ctx, setCharacterRelationshipQuery,
		rel.CharacterID, rel.RelatedCharacterID, rel.RelationshipType, rel.Description, rel.Strength)
	if err != nil {
		r.logger.Error("Failed to set character relationship", zap.Error(err),
			zap.Int64("characterID", rel.CharacterID), zap.Int64("relatedCharacterID", rel.RelatedCharacterID))
		return fmt.Errorf("failed to set character relationship: %w", err)
	}
	return nil
}

func (r *pgCharacterRepository) ListRelationships(ctx context.Context, characterID int64) ([]models.CharacterRelationship, error) {
	rels := []models.CharacterRelationship{}
	err := pgxscan.Select(ctx, r.db, &rels, listCharacterRelationshipsQuery, characterID)
	if err != nil {
		r.logger.Error("Failed to list character relationships", zap.Error(err), zap.Int64("characterID", characterID))
		return nil, fmt.Errorf("failed to list character relationships: %w", err)
	}
	return rels, nil
}
