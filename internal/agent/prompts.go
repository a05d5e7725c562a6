package agent

import "fmt"

// systemPrompt - общая системная инструкция для всех запросов генерации.
const systemPrompt = "You are an expert AI assistant for story generation. You can help users create " +
	"story outlines, generate story content, and develop characters. When asked to generate " +
	"content, always respond with the requested structure rather than commentary about the task."

// Инструкции по формату ответа, добавляются к системному промту
// в зависимости от целевой структуры.
const (
	outlineInstruction = `Respond with a single JSON object of the form:
{"itemList": [{"title": "...", "content": "...", "children": [{"title": "...", "content": "..."}]}]}
The "children" array is optional and at most one level deep. Do not wrap the JSON in markdown fences.`

	contentInstruction = `Respond with a single JSON object of the form:
{"story_id": 0, "outline_title": "...", "content": "..."}
Do not wrap the JSON in markdown fences.`

	characterInstruction = `Respond with a single JSON object of the form:
{"story_id": 0, "name": "...", "description": "...", "appearance": "...", "personality": "...", "backstory": "...", "arc": "...", "quirks": "..."}
Do not wrap the JSON in markdown fences.`
)

const outlinePromptTemplate = `You are an expert story planner. Please generate a detailed story outline based on the following information:

Title: %s
Genre: %s
Summary: %s
Language: %s
Characters: %s

Requirements:
- Generate a clear, hierarchical outline: a list of main chapters or sections, each with a title and a brief summary.
- A main chapter may contain a list of sub-sections, each with a title and a brief summary. Do not nest deeper than two levels.
- The outline should be suitable for further story development.
- Do not write the actual story content, only the outline structure and summaries.
`

const contentPromptTemplate = `You are an expert story writer. Please write the prose for one section of a story based on the following information:

Title: %s
Genre: %s
Summary: %s
Outline: %s
Section to write: %s
Language: %s
Characters: %s

Requirements:
- Write only the content of the requested section, consistent with the outline and the characters.
- Match the tone and style implied by the genre.
- Write in the requested language.
`

const characterPromptTemplate = `You are an expert character designer. Please create a character based on the following information:

User request: %s
Story title: %s
Genre: %s
Summary: %s
Language: %s

Requirements:
- The character should fit the story's genre and summary.
- Include a description, appearance, personality, backstory, character arc and quirks.
- Write in the requested language.
`

// OutlinePrompt формирует промт генерации плана истории.
func OutlinePrompt(title, genre, summary, language, charactersJSON string) string {
	return fmt.Sprintf(outlinePromptTemplate, title, genre, summary, language, charactersJSON)
}

// ContentPrompt формирует промт генерации прозы для одного пункта плана.
func ContentPrompt(title, genre, summary, outlineJSON, outlineTitle, language, charactersJSON string) string {
	return fmt.Sprintf(contentPromptTemplate, title, genre, summary, outlineJSON, outlineTitle, language, charactersJSON)
}

// CharacterPrompt формирует промт генерации персонажа по запросу пользователя.
func CharacterPrompt(userPrompt, title, genre, summary, language string) string {
	return fmt.Sprintf(characterPromptTemplate, userPrompt, title, genre, summary, language)
}
