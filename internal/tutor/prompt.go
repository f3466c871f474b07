package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/homeworkpal/internal/quest"
)

const tutorSystemPrompt = `You are Homework Pal, a cheerful tutor for a young child. You speak in short, simple sentences and use a friendly emoji now and then. You never reveal answers to questions that have not been asked yet, and you never ask a new question yourself.`

// historyWindow caps how many earlier turns are sent as context.
const historyWindow = 6

func buildJudgeUserMessage(in JudgeInput, verdict bool) string {
	var b strings.Builder

	if in.Learning != "" {
		fmt.Fprintf(&b, "Learning material:\n%s\n\n", in.Learning)
	}

	if len(in.History) > 0 {
		b.WriteString("Recent conversation:\n")
		start := max(0, len(in.History)-historyWindow)
		for _, t := range in.History[start:] {
			fmt.Fprintf(&b, "- %s: %s\n", t.Role, oneLine(t.Content))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Item %d of %d:\n%s\n\n", in.Index+1, in.Total, quest.Present(in.Item))
	fmt.Fprintf(&b, "Child's answer: %q\n", in.Answer)

	if in.Kind == quest.KindMemorization {
		fmt.Fprintf(&b, "Word match check: %v\n", verdict)
		b.WriteString(`
Instructions:
The child is reciting the line above from memory. Mark it correct if the child said the line, allowing small slips in wording, missing punctuation and speech-to-text mistakes.
If it is not correct, gently say the line for them.`)
	} else {
		if ans := in.Item.Answer(); ans != "" {
			fmt.Fprintf(&b, "Correct option: %s\n", ans)
		}
		fmt.Fprintf(&b, "Answer check: %v\n", verdict)
		b.WriteString(`
Instructions:
The answer check above is final; copy it into "correct".
If correct, praise the child. If not, kindly tell them the correct option.`)
	}
	b.WriteString("\nWrite at most two sentences of feedback. Do not ask the next question.")

	return b.String()
}

// maxContextRunes bounds each history line in the judge prompt.
const maxContextRunes = 200

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxContextRunes {
		s = string(r[:maxContextRunes]) + "..."
	}
	return s
}
