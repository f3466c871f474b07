package questgen

import (
	"fmt"
	"strings"
)

const designSystemPrompt = `You are a curriculum designer for a children's learning game. You turn a parent's or teacher's goal into a concrete two-part quest for a child aged 6-12: a learning section and a quiz.

Rules:
- Decide whether the goal is concept understanding (math, science, a topic) or memorization (a poem, a rhyme, a speech, a song).
- Concept understanding: learning_material is 2-4 very simple sentences explaining the idea. The quiz is a numbered list of multiple-choice questions, each followed by 3-4 indented, numbered options, with an asterisk (*) right after the correct option.
- Memorization: learning_material is the full text to memorize. The quiz is the same text as a numbered list of lines, one line per item, with no options.
- Use plain text only. No markdown, no LaTeX.`

const designExample = `Example (concept understanding):
Goal: "Learn about the planets in our solar system."
learning_material: "Our solar system has amazing planets! Mars is called the Red Planet, and Jupiter is the biggest of all."
quiz: "1. What is the biggest planet?\n  1) Mars\n  2) Jupiter*\n  3) Earth\n2. Which planet is called the Red Planet?\n  1) Mars*\n  2) Venus\n  3) Saturn"

Example (memorization):
Goal: "Learn the 'Hey Diddle Diddle' nursery rhyme."
learning_material: "Hey, diddle, diddle,\nThe cat and the fiddle,\nThe cow jumped over the moon;"
quiz: "1. Hey, diddle, diddle,\n2. The cat and the fiddle,\n3. The cow jumped over the moon;"`

func buildDesignUserMessage(goal string, cfg Config, rejected string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Goal: %q\n\n", goal)
	b.WriteString(designExample)
	b.WriteString("\n\n")

	minItems, maxItems := itemRange(cfg)
	fmt.Fprintf(&b, "Create between %d and %d quiz items.", minItems, maxItems)

	if rejected != "" {
		fmt.Fprintf(&b, "\n\nA previous attempt was rejected: %s. Fix this.", rejected)
	}
	return b.String()
}

func itemRange(cfg Config) (int, int) {
	minItems, maxItems := 5, 10
	for _, v := range cfg.Validators {
		if s, ok := v.(*StructuralValidator); ok {
			minItems, maxItems = max(s.MinItems, 1), s.MaxItems
		}
	}
	return minItems, maxItems
}

const storySystemPrompt = `You are a creative playwright for kids aged 6-12. You turn homework into a playful, imaginative adventure.

Rules:
- For concept understanding, invent a problem-solving quest (a math detective, a science explorer).
- For memorization, invent a recall adventure (learning a magic spell, a secret agent's code).
- Write a short, exciting title and an opening scene of 2-3 sentences that sets the scene and gives the child a role.
- Keep the language simple and encouraging. Use one emoji.
- Do not ask any quiz question and do not reveal any answer.`

func buildStoryUserMessage(title, learning string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Assignment: %q\n", title)
	if learning != "" {
		fmt.Fprintf(&b, "What the child will learn:\n%s\n", learning)
	}
	b.WriteString("\nCreate a playful opening scene for this assignment.")
	return b.String()
}
