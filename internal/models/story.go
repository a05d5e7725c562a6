package models

import (
	"encoding/json"
	"time"
)

// OutlineItem - один пункт плана истории. Дерево глубиной не более двух уровней:
// пункт может содержать подпункты в Children, но подпункты вложенности не имеют.
// StoryContentID - денормализованная ссылка на сгенерированный текст раздела,
// проставляется при создании StoryContent с совпадающим заголовком.
type OutlineItem struct {
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	StoryContentID *int64        `json:"story_content_id,omitempty"`
	Children       []OutlineItem `json:"children,omitempty"`
}

// StoryOutline - план истории, хранится в JSONB колонке stories.outline.
type StoryOutline struct {
	ItemList []OutlineItem `json:"itemList"`
}

// FindItem возвращает пункт плана с указанным заголовком (поиск по обоим уровням).
func (o *StoryOutline) FindItem(title string) *OutlineItem {
	if o == nil {
		return nil
	}
	for i := range o.ItemList {
		if o.ItemList[i].Title == title {
			return &o.ItemList[i]
		}
		for j := range o.ItemList[i].Children {
			if o.ItemList[i].Children[j].Title == title {
				return &o.ItemList[i].Children[j]
			}
		}
	}
	return nil
}

// Story - основная сущность: история, которую пишет пользователь.
// SSF - зарезервированный расширенный формат сериализации (metadata + блоки
// контента + граф персонажей + таймлайн), пока хранится как непрозрачный blob.
type Story struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	CreatorUserID   int64           `json:"creator_user_id"`
	Author          *string         `json:"author,omitempty"`
	Genre           *Genre          `json:"genre,omitempty"`
	Language        *Language       `json:"language,omitempty"`
	Summary         *string         `json:"summary,omitempty"`
	Outline         *StoryOutline   `json:"outline,omitempty"`
	SSF             json.RawMessage `json:"ssf,omitempty"`
	VersionTime     time.Time       `json:"version_time"`
	VersionText     *string         `json:"version_text,omitempty"`
	StoryTemplateID *int64          `json:"story_template_id,omitempty"`
	IsDeleted       bool            `json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// GenreOrUnknown возвращает имя жанра или "Unknown", если жанр не задан.
// Используется при сборке промтов.
func (s *Story) GenreOrUnknown() string {
	if s.Genre == nil {
		return "Unknown"
	}
	return string(*s.Genre)
}

// LanguageOrDefault возвращает язык истории или язык по умолчанию.
func (s *Story) LanguageOrDefault() Language {
	if s.Language == nil {
		return DefaultLanguage
	}
	return *s.Language
}

// StoryCreate - данные для создания истории.
type StoryCreate struct {
	Title           string          `json:"title" binding:"required"`
	CreatorUserID   int64           `json:"creator_user_id" binding:"required"`
	Author          *string         `json:"author"`
	Genre           *Genre          `json:"genre"`
	Language        *Language       `json:"language"`
	Summary         *string         `json:"summary"`
	Outline         *StoryOutline   `json:"outline"`
	SSF             json.RawMessage `json:"ssf"`
	VersionText     *string         `json:"version_text"`
	StoryTemplateID *int64          `json:"story_template_id"`
}

// StoryUpdate - частичное обновление истории. Поля со значением nil не трогаются.
type StoryUpdate struct {
	Title           *string         `json:"title"`
	Author          *string         `json:"author"`
	Genre           *Genre          `json:"genre"`
	Language        *Language       `json:"language"`
	Summary         *string         `json:"summary"`
	Outline         *StoryOutline   `json:"outline"`
	SSF             json.RawMessage `json:"ssf"`
	VersionText     *string         `json:"version_text"`
	StoryTemplateID *int64          `json:"story_template_id"`
}
