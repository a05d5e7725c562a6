package models

import "time"

// StoryContent - сгенерированная проза для одного пункта плана истории.
// Создание StoryContent проставляет story_content_id в пункте плана
// с совпадающим заголовком (в одной транзакции).
type StoryContent struct {
	ID           int64     `json:"id"`
	StoryID      int64     `json:"story_id"`
	OutlineTitle string    `json:"outline_title"`
	Content      string    `json:"content"`
	IsDeleted    bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StoryContentCreate - данные для создания контента раздела.
// Этот же тип возвращает генерация контента.
type StoryContentCreate struct {
	StoryID      int64  `json:"story_id" binding:"required"`
	OutlineTitle string `json:"outline_title" binding:"required"`
	Content      string `json:"content"`
}

// StoryContentUpdate - частичное обновление контента раздела.
type StoryContentUpdate struct {
	OutlineTitle *string `json:"outline_title"`
	Content      *string `json:"content"`
}
