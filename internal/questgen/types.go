// Package questgen designs quest content and story intros with the LLM.
package questgen

import "github.com/abhisek/homeworkpal/internal/quest"

// Design is a generated quest: the stored text and its parsed form.
type Design struct {
	// Content is the two-section text stored as the assignment description.
	Content string

	Quest *quest.Content
}

// Story is the playful intro shown before the learning material.
type Story struct {
	Title string `json:"title"`
	Story string `json:"story"`
}

// FallbackStory is used when the storyteller cannot produce a story.
func FallbackStory(title string) Story {
	return Story{Title: title, Story: "Let's get started with your assignment!"}
}
