package models

import "time"

// Character - персонаж истории. Принадлежит ровно одной истории.
type Character struct {
	ID          int64     `json:"id"`
	StoryID     int64     `json:"story_id"`
	Name        string    `json:"name"`
	IsMain      bool      `json:"is_main"`
	Gender      *Gender   `json:"gender,omitempty"`
	MBTI        *MBTIType `json:"mbti,omitempty"`
	Age         int       `json:"age"`
	Description string    `json:"description"`
	Appearance  string    `json:"appearance"`
	Personality string    `json:"personality"`
	Backstory   string    `json:"backstory"`
	Arc         string    `json:"arc"`
	Quirks      string    `json:"quirks"`
	IsDeleted   bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CharacterCreate - данные для создания персонажа.
// Этот же тип возвращает генерация персонажа (без сохранения).
type CharacterCreate struct {
	StoryID     int64     `json:"story_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	IsMain      bool      `json:"is_main"`
	Gender      *Gender   `json:"gender"`
	MBTI        *MBTIType `json:"mbti"`
	Age         int       `json:"age"`
	Description string    `json:"description"`
	Appearance  string    `json:"appearance"`
	Personality string    `json:"personality"`
	Backstory   string    `json:"backstory"`
	Arc         string    `json:"arc"`
	Quirks      string    `json:"quirks"`
}

// CharacterUpdate - частичное обновление персонажа.
type CharacterUpdate struct {
	Name        *string   `json:"name"`
	IsMain      *bool     `json:"is_main"`
	Gender      *Gender   `json:"gender"`
	MBTI        *MBTIType `json:"mbti"`
	Age         *int      `json:"age"`
	Description *string   `json:"description"`
	Appearance  *string   `json:"appearance"`
	Personality *string   `json:"personality"`
	Backstory   *string   `json:"backstory"`
	Arc         *string   `json:"arc"`
	Quirks      *string   `json:"quirks"`
}

// CharacterEvent - связь персонажа с событием (many-to-many) с атрибутами участия.
type CharacterEvent struct {
	CharacterID int64   `json:"character_id"`
	EventID     int64   `json:"event_id"`
	Role        *string `json:"role,omitempty"`
	Importance  int     `json:"importance"` // 1..10, по умолчанию 1
	Actions     *string `json:"actions,omitempty"`
	Emotions    *string `json:"emotions,omitempty"`
}

// CharacterRelationship - типизированная связь между двумя персонажами.
// Strength - сила связи от 1 до 10, по умолчанию 5.
type CharacterRelationship struct {
	CharacterID        int64            `json:"character_id"`
	RelatedCharacterID int64            `json:"related_character_id"`
	RelationshipType   RelationshipType `json:"relationship_type"`
	Description        *string          `json:"description,omitempty"`
	Strength           int              `json:"strength"`
}
