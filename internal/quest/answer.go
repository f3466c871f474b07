package quest

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultRecallThreshold is the share of a line's words a recitation must
// contain to count as correct.
const DefaultRecallThreshold = 0.6

// Matcher checks a child's answer against a quiz item.
type Matcher struct {
	// RecallThreshold is the minimum fraction (0-1] of the expected words
	// that a memorization answer must contain.
	RecallThreshold float64
}

// NewMatcher returns a Matcher; a threshold outside (0, 1] falls back to
// DefaultRecallThreshold.
func NewMatcher(threshold float64) Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultRecallThreshold
	}
	return Matcher{RecallThreshold: threshold}
}

// Check reports whether answer is correct for it.
//
// Multiple-choice answers match the correct option by its number ("2"),
// its letter ("B") or its text, ignoring case and surrounding space.
// Memorization answers are lenient: enough of the line's words must be
// present, in any order, ignoring case and punctuation.
func (m Matcher) Check(it Item, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	if it.IsMultipleChoice() {
		idx, ok := ChoiceIndex(it, answer)
		return ok && idx == it.Correct
	}
	return RecallScore(it.Prompt, answer) >= m.RecallThreshold
}

// ChoiceIndex resolves answer to an option index of it.
func ChoiceIndex(it Item, answer string) (int, bool) {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(it.Options) {
		// A numeric answer that is itself an option's text ("8" for
		// "10 - 2 = ?") is resolved by text, not by position.
		if idx, ok := optionByText(it, answer); ok {
			return idx, true
		}
		return n - 1, true
	}
	// Option text wins over letter position too, so "B" picks the option
	// reading "B" even when it is not the second one.
	if idx, ok := optionByText(it, answer); ok {
		return idx, true
	}
	if len(answer) == 1 {
		r := unicode.ToUpper(rune(answer[0]))
		if r >= 'A' && int(r-'A') < len(it.Options) {
			return int(r - 'A'), true
		}
	}
	return -1, false
}

func optionByText(it Item, answer string) (int, bool) {
	for i, opt := range it.Options {
		if strings.EqualFold(strings.TrimSpace(opt), answer) {
			return i, true
		}
	}
	return -1, false
}

// RecallScore returns the fraction of expected's words found in said.
// Each spoken word can satisfy at most one expected word.
func RecallScore(expected, said string) float64 {
	want := words(expected)
	if len(want) == 0 {
		return 0
	}
	have := make(map[string]int)
	for _, w := range words(said) {
		have[w]++
	}
	hits := 0
	for _, w := range want {
		if have[w] > 0 {
			have[w]--
			hits++
		}
	}
	return float64(hits) / float64(len(want))
}

// words lowercases s, drops punctuation and splits on whitespace.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '\'')
	})
}
