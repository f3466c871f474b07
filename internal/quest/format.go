package quest

import (
	"fmt"
	"strings"
)

// Join combines learning material and quiz text into the stored
// two-section layout.
func Join(learning, quiz string) string {
	return fmt.Sprintf("%s\n%s\n\n%s\n%s",
		LearningMarker, strings.TrimSpace(learning),
		QuizMarker, strings.TrimSpace(quiz))
}

// Format serializes c back into the two-section layout. Parsing the
// result yields the same learning text and item list.
func Format(c *Content) string {
	return Join(c.Learning, FormatQuiz(c.Items))
}

// FormatQuiz renders items as a numbered list. Options are indented and
// numbered "1)", with the correct one followed by the sentinel.
func FormatQuiz(items []Item) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, it.Prompt)
		for j, opt := range it.Options {
			b.WriteString("\n")
			fmt.Fprintf(&b, "  %d) %s", j+1, opt)
			if j == it.Correct {
				b.WriteString(CorrectSentinel)
			}
		}
	}
	return b.String()
}

// Present renders a single item the way the child sees it.
func Present(it Item) string {
	if !it.IsMultipleChoice() {
		return it.Prompt
	}
	var b strings.Builder
	b.WriteString(it.Prompt)
	for j, opt := range it.Options {
		fmt.Fprintf(&b, "\n  %d) %s", j+1, opt)
	}
	return b.String()
}
