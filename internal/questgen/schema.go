package questgen

import "github.com/abhisek/homeworkpal/internal/llm"

// QuestSchema defines the JSON schema for quest design.
var QuestSchema = &llm.Schema{
	Name:        "quest-design",
	Description: "A two-part quest for a child: learning material and a numbered quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"learning_material": map[string]any{
				"type":        "string",
				"description": "A short, simple paragraph explaining the concept, or the full text to memorize",
			},
			"quiz": map[string]any{
				"type":        "string",
				"description": "A numbered list of questions with indented numbered options, the correct one marked with *, or a numbered list of lines to recite",
			},
		},
		"required":             []any{"learning_material", "quiz"},
		"additionalProperties": false,
	},
}

// StorySchema defines the JSON schema for story intros.
var StorySchema = &llm.Schema{
	Name:        "quest-story",
	Description: "A catchy title and an opening scene for a homework quest",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A short, catchy, adventurous title (3-8 words)",
			},
			"story": map[string]any{
				"type":        "string",
				"description": "An opening paragraph of 2-3 sentences that sets the scene",
			},
		},
		"required":             []any{"title", "story"},
		"additionalProperties": false,
	},
}
