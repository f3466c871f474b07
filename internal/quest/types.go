package quest

// Section markers delimiting the two parts of a quest content blob.
const (
	LearningMarker = "##LEARNING##"
	QuizMarker     = "##QUIZ##"

	// CorrectSentinel immediately follows the text of the correct option.
	// An option whose own text ends in "*" cannot be written in this
	// format: it reads back as the marked option.
	CorrectSentinel = "*"
)

// Kind describes how a quest's quiz is played.
type Kind string

const (
	// KindMultipleChoice means every item is a question with labeled options.
	KindMultipleChoice Kind = "multiple_choice"

	// KindMemorization means every item is a line the child recites.
	KindMemorization Kind = "memorization"
)

// Item is one quiz entry: a multiple-choice question or a memorization line.
type Item struct {
	// Prompt is the question text, or the literal line to recite.
	Prompt string

	// Options holds the choice texts for multiple-choice items. Empty for
	// memorization lines.
	Options []string

	// Correct is the index into Options of the correct choice, or -1 when
	// no option is marked (always -1 for memorization lines).
	Correct int
}

// IsMultipleChoice reports whether the item offers options.
func (it Item) IsMultipleChoice() bool {
	return len(it.Options) > 0
}

// Answer returns the expected answer text: the correct option for a
// multiple-choice item, the line itself for a memorization item.
func (it Item) Answer() string {
	if it.IsMultipleChoice() {
		if it.Correct >= 0 && it.Correct < len(it.Options) {
			return it.Options[it.Correct]
		}
		return ""
	}
	return it.Prompt
}

// Content is the parsed view of an assignment's description.
type Content struct {
	// Learning is the explanation paragraph or the full text to memorize.
	// Empty when the source had no section markers.
	Learning string

	// Kind is fixed per quest.
	Kind Kind

	// Items are presented strictly in order, one at a time.
	Items []Item
}

// Len returns the number of quiz items.
func (c *Content) Len() int {
	return len(c.Items)
}

// Item returns the i-th quiz item and whether it exists.
func (c *Content) Item(i int) (Item, bool) {
	if i < 0 || i >= len(c.Items) {
		return Item{}, false
	}
	return c.Items[i], true
}
