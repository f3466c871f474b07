package tutor

import "github.com/abhisek/homeworkpal/internal/llm"

// JudgementSchema is the structured output the tutor asks for when judging
// an answer.
var JudgementSchema = &llm.Schema{
	Name:        "answer-judgement",
	Description: "Verdict on a child's quiz answer with one short line of feedback",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the child's answer is correct",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One or two cheerful sentences for the child, with an emoji",
			},
		},
		"required":             []any{"correct", "feedback"},
		"additionalProperties": false,
	},
}
