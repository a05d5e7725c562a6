package interfaces

import (
	"context"

	"genstory-server/internal/models"
)

// CharacterRepository defines the interface for character persistence,
// including many-to-many links to events and other characters.
type CharacterRepository interface {
	// Create inserts a new character and fills the generated ID.
	Create(ctx context.Context, character *models.Character) error

	// GetByID returns models.ErrCharacterNotFound if the character does not exist.
	GetByID(ctx context.Context, id int64) (*models.Character, error)

	// List retrieves characters with skip/limit pagination.
	List(ctx context.Context, skip, limit int) ([]models.Character, error)

	// ListByStoryID retrieves all characters belonging to a story.
	ListByStoryID(ctx context.Context, storyID int64) ([]models.Character, error)

	// UpdateFields applies a partial update. Nil fields are left untouched.
	UpdateFields(ctx context.Context, id int64, upd *models.CharacterUpdate) error

	// Delete removes a character. Returns models.ErrCharacterNotFound if absent.
	Delete(ctx context.Context, id int64) error

	// LinkEvent attaches a character to an event with participation attributes.
	LinkEvent(ctx context.Context, link *models.CharacterEvent) error

	// ListEventLinks returns event participation records for a character.
	ListEventLinks(ctx context.Context, characterID int64) ([]models.CharacterEvent, error)

	// SetRelationship upserts a typed relationship between two characters.
	SetRelationship(ctx context.Context, rel *models.CharacterRelationship) error

	// ListRelationships returns relationships originating from a character.
	ListRelationships(ctx context.Context, characterID int64) ([]models.CharacterRelationship, error)
}
