package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutlinePrompt(t *testing.T) {
	prompt := OutlinePrompt("The Lost Kingdom", "fantasy", "A knight's quest.", "en", `[{"name":"Aldric"}]`)

	assert.Contains(t, prompt, "Title: The Lost Kingdom")
	assert.Contains(t, prompt, "Genre: fantasy")
	assert.Contains(t, prompt, "Summary: A knight's quest.")
	assert.Contains(t, prompt, "Language: en")
	assert.Contains(t, prompt, `Characters: [{"name":"Aldric"}]`)
	// Промт запрашивает структуру, а не готовую прозу.
	assert.Contains(t, prompt, "only the outline structure")
	assert.False(t, strings.Contains(prompt, "%s"), "all placeholders must be filled")
}

func TestContentPrompt(t *testing.T) {
	prompt := ContentPrompt("The Lost Kingdom", "fantasy", "A knight's quest.", `{"itemList":[]}`, "Chapter 1", "en", "[]")

	assert.Contains(t, prompt, "Section to write: Chapter 1")
	assert.Contains(t, prompt, `Outline: {"itemList":[]}`)
	assert.False(t, strings.Contains(prompt, "%s"), "all placeholders must be filled")
}

func TestCharacterPrompt(t *testing.T) {
	prompt := CharacterPrompt("a grumpy wizard", "The Lost Kingdom", "fantasy", "A knight's quest.", "en")

	assert.Contains(t, prompt, "User request: a grumpy wizard")
	assert.Contains(t, prompt, "Story title: The Lost Kingdom")
	assert.False(t, strings.Contains(prompt, "%s"), "all placeholders must be filled")
}

func TestStripJSONFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Plain JSON untouched", `{"a":1}`, `{"a":1}`},
		{"Fenced with language tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Fenced without language tag", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"Surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
		{"Empty input", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripJSONFences(tc.in))
		})
	}
}
