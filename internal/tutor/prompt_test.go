package tutor

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestOneLine(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantRunes int
	}{
		{"short", "Great   job!\n Next one.", len("Great job! Next one.")},
		{"ascii over limit", strings.Repeat("a", 250), maxContextRunes + 3},
		{"emoji over limit", strings.Repeat("🌟", 150), maxContextRunes + 3},
		{"mixed over limit", "é" + strings.Repeat("x🎉", 120), maxContextRunes + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oneLine(tt.in)
			if !utf8.ValidString(got) {
				t.Fatalf("oneLine produced invalid UTF-8: %q", got)
			}
			if n := utf8.RuneCountInString(got); n != tt.wantRunes {
				t.Errorf("rune count = %d, want %d", n, tt.wantRunes)
			}
		})
	}
}

func TestBuildJudgeUserMessage_EmojiHistory(t *testing.T) {
	in := JudgeInput{
		Item:    subtractionQuest().Items[0],
		Total:   2,
		Answer:  "8",
		History: []Turn{{Role: RoleModel, Content: strings.Repeat("⭐", 300)}},
	}
	if msg := buildJudgeUserMessage(in, true); !utf8.ValidString(msg) {
		t.Errorf("judge message is not valid UTF-8")
	}
}
