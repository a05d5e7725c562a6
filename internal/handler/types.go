package handler

import (
	"genstory-server/internal/models"

	"github.com/google/uuid"
)

type characterEventRequest struct {
	EventID    int64   `json:"event_id" binding:"required"`
	Role       *string `json:"role"`
	Importance int     `json:"importance"`
	Actions    *string `json:"actions"`
	Emotions   *string `json:"emotions"`
}

type characterRelationshipRequest struct {
	RelatedCharacterID int64                   `json:"related_character_id" binding:"required"`
	RelationshipType   models.RelationshipType `json:"relationship_type" binding:"required"`
	Description        *string                 `json:"description"`
	Strength           int                     `json:"strength"`
}

type registerToolRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Version     *string `json:"version"`
}

type recordToolUsageRequest struct {
	SessionID       uuid.UUID `json:"session_id" binding:"required"`
	ToolID          uuid.UUID `json:"tool_id" binding:"required"`
	MessageID       uuid.UUID `json:"message_id" binding:"required"`
	ExecutionTimeMs *int      `json:"execution_time_ms"`
	Success         bool      `json:"success"`
	ErrorMessage    *string   `json:"error_message"`
}

type resendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}
