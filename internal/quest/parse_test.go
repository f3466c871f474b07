package quest

import (
	"errors"
	"reflect"
	"testing"
)

const planetsQuest = `##LEARNING##
Our solar system has amazing planets! Jupiter is the biggest of all.

##QUIZ##
1. What is the biggest planet?
  1) Mars
  2) Jupiter*
  3) Earth
2. Which planet is called the Red Planet?
  1) Mars*
  2) Venus
  3) Saturn`

const rhymeQuest = `##LEARNING##
Hey, diddle, diddle,
The cat and the fiddle,

##QUIZ##
1. Hey, diddle, diddle,
2. The cat and the fiddle,
3. The cow jumped over the moon;`

func TestParse_MultipleChoice(t *testing.T) {
	c, err := Parse(planetsQuest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind != KindMultipleChoice {
		t.Fatalf("expected multiple choice, got %q", c.Kind)
	}
	if c.Learning != "Our solar system has amazing planets! Jupiter is the biggest of all." {
		t.Errorf("unexpected learning text: %q", c.Learning)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", c.Len())
	}

	first := c.Items[0]
	if first.Prompt != "What is the biggest planet?" {
		t.Errorf("unexpected prompt: %q", first.Prompt)
	}
	if !reflect.DeepEqual(first.Options, []string{"Mars", "Jupiter", "Earth"}) {
		t.Errorf("unexpected options: %v", first.Options)
	}
	if first.Correct != 1 || first.Answer() != "Jupiter" {
		t.Errorf("expected Jupiter (1) correct, got %d %q", first.Correct, first.Answer())
	}
	if c.Items[1].Correct != 0 {
		t.Errorf("expected Mars (0) correct, got %d", c.Items[1].Correct)
	}
}

func TestParse_Memorization(t *testing.T) {
	c, err := Parse(rhymeQuest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind != KindMemorization {
		t.Fatalf("expected memorization, got %q", c.Kind)
	}
	want := []string{"Hey, diddle, diddle,", "The cat and the fiddle,", "The cow jumped over the moon;"}
	if c.Len() != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), c.Len())
	}
	for i, w := range want {
		if c.Items[i].Prompt != w {
			t.Errorf("item %d: got %q, want %q", i, c.Items[i].Prompt, w)
		}
		if c.Items[i].IsMultipleChoice() {
			t.Errorf("item %d: memorization line should have no options", i)
		}
	}
}

func TestParse_NoMarkersIsDegraded(t *testing.T) {
	c, err := Parse("Twinkle, twinkle, little star,\nHow I wonder what you are!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Learning != "" {
		t.Errorf("expected empty learning material, got %q", c.Learning)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", c.Len())
	}
	if c.Items[1].Prompt != "How I wonder what you are!" {
		t.Errorf("unexpected second line: %q", c.Items[1].Prompt)
	}
}

func TestParse_EmptyQuizFails(t *testing.T) {
	for _, raw := range []string{
		"",
		"##LEARNING##\nSome text\n\n##QUIZ##\n   \n",
	} {
		_, err := Parse(raw)
		if err == nil {
			t.Fatalf("expected error for %q", raw)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("expected *ParseError, got %T", err)
		}
		if !errors.Is(err, ErrEmptyQuiz) {
			t.Fatalf("expected ErrEmptyQuiz, got %v", err)
		}
	}
}

func TestParse_LetterOptionsAndContinuation(t *testing.T) {
	raw := "##LEARNING##\nSubtracting from 10.\n##QUIZ##\n1. Take away two\nfrom ten:\n  a) 7\n  b) 8*\n  c) 9"
	c, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Items[0].Prompt != "Take away two from ten:" {
		t.Errorf("unexpected prompt: %q", c.Items[0].Prompt)
	}
	if c.Items[0].Answer() != "8" {
		t.Errorf("expected answer 8, got %q", c.Items[0].Answer())
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, raw := range []string{planetsQuest, rhymeQuest} {
		c, err := Parse(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		again, err := Parse(Format(c))
		if err != nil {
			t.Fatalf("re-parse failed: %v", err)
		}
		if !reflect.DeepEqual(c, again) {
			t.Errorf("round trip mismatch:\n got %+v\nwant %+v", again, c)
		}
	}
}

func TestFormat_OptionEndingInSentinel(t *testing.T) {
	// A trailing "*" in option text is indistinguishable from the marker.
	c := &Content{
		Learning: "Stars are multiplication.",
		Items: []Item{
			{Prompt: "Which one is a full expression?", Options: []string{"2*", "2*3"}, Correct: 1},
		},
	}
	got, err := Parse(Format(c))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := got.Items[0]
	if it.Correct != 0 {
		t.Errorf("Correct = %d, want 0 (first marked option wins)", it.Correct)
	}
	if want := []string{"2", "2*3"}; !reflect.DeepEqual(it.Options, want) {
		t.Errorf("Options = %q, want %q", it.Options, want)
	}
}

func TestFormat_Layout(t *testing.T) {
	c := &Content{
		Learning: "Ten take away two is eight.",
		Kind:     KindMultipleChoice,
		Items: []Item{
			{Prompt: "10 - 2 = ?", Options: []string{"7", "8", "9"}, Correct: 1},
		},
	}
	want := "##LEARNING##\nTen take away two is eight.\n\n##QUIZ##\n1. 10 - 2 = ?\n  1) 7\n  2) 8*\n  3) 9"
	if got := Format(c); got != want {
		t.Errorf("Format mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestLearningPreview(t *testing.T) {
	if got := LearningPreview(planetsQuest); got != "Our solar system has amazing planets! Jupiter is the biggest of all." {
		t.Errorf("unexpected preview: %q", got)
	}
	if got := LearningPreview("no markers here"); got != "" {
		t.Errorf("expected empty preview, got %q", got)
	}
}
