package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session - аудит-сессия генерации: группирует упорядоченный лог сообщений
// и записи об использовании инструментов. Не связана с HTTP-сессией.
type Session struct {
	ID          uuid.UUID       `json:"id"`
	UserID      int64           `json:"user_id"`
	Title       *string         `json:"title,omitempty"`
	Status      SessionStatus   `json:"status"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	TotalTokens int             `json:"total_tokens"`
	ModelUsed   *string         `json:"model_used,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SessionMessage - одна запись append-only лога сессии.
// SequenceNumber строго возрастает в рамках сессии начиная с 1, без пропусков
// при последовательных записях; номер назначается на уровне хранилища.
type SessionMessage struct {
	ID              uuid.UUID       `json:"id"`
	SessionID       uuid.UUID       `json:"session_id"`
	Role            MessageRole     `json:"role"`
	Content         string          `json:"content"`
	ToolName        *string         `json:"tool_name,omitempty"`
	ToolInput       json.RawMessage `json:"tool_input,omitempty"`
	ToolOutput      json.RawMessage `json:"tool_output,omitempty"`
	TokensUsed      *int            `json:"tokens_used,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	ParentMessageID *uuid.UUID      `json:"parent_message_id,omitempty"`
	SequenceNumber  int             `json:"sequence_number"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SessionMessageCreate - данные для добавления записи в лог.
// SequenceNumber не задается вызывающим кодом.
type SessionMessageCreate struct {
	SessionID       uuid.UUID       `json:"session_id"`
	Role            MessageRole     `json:"role"`
	Content         string          `json:"content"`
	ToolName        *string         `json:"tool_name,omitempty"`
	ToolInput       json.RawMessage `json:"tool_input,omitempty"`
	ToolOutput      json.RawMessage `json:"tool_output,omitempty"`
	TokensUsed      *int            `json:"tokens_used,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	ParentMessageID *uuid.UUID      `json:"parent_message_id,omitempty"`
}

// Tool - зарегистрированный инструмент агента.
type Tool struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Version     *string   `json:"version,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToolUsage - запись об одном вызове инструмента в рамках сессии.
type ToolUsage struct {
	ID              uuid.UUID `json:"id"`
	SessionID       uuid.UUID `json:"session_id"`
	ToolID          uuid.UUID `json:"tool_id"`
	MessageID       uuid.UUID `json:"message_id"`
	ExecutionTimeMs *int      `json:"execution_time_ms,omitempty"`
	Success         bool      `json:"success"`
	ErrorMessage    *string   `json:"error_message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// SessionStats - сводка по сессии для отладочных ручек.
type SessionStats struct {
	SessionID      uuid.UUID `json:"session_id"`
	MessageCount   int       `json:"message_count"`
	ToolUsageCount int       `json:"tool_usage_count"`
	TotalTokens    int       `json:"total_tokens"`
}
