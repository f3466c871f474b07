package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"7", "8", "9"})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	if m.Choice() != 0 {
		t.Error("Choice before submit should be 0")
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.Choice() != 3 {
		t.Errorf("Choice = %d, want 3", m.Choice())
	}
}

func TestMultiChoice_DigitPicks(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"1", 1},
		{"2", 2},
		{"4", 0}, // only two options
	}
	for _, tt := range tests {
		m := NewMultiChoice([]string{"2", "3"})
		m, _ = m.Update(tea.KeyPressMsg{Code: []rune(tt.key)[0], Text: tt.key})
		if m.Choice() != tt.want {
			t.Errorf("key %s: Choice = %d, want %d", tt.key, m.Choice(), tt.want)
		}
	}
}

func TestMultiChoice_IgnoresInputAfterSubmit(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 || m.Choice() != 1 {
		t.Errorf("Selected = %d, Choice = %d", m.Selected, m.Choice())
	}
}

func TestMultiChoice_LongListAndView(t *testing.T) {
	opts := []string{"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn"}
	m := NewMultiChoice(opts)
	m, _ = m.Update(tea.KeyPressMsg{Code: '6', Text: "6"})
	if m.Choice() != 6 {
		t.Fatalf("Choice = %d, want 6", m.Choice())
	}
	if v := m.View(); !strings.Contains(v, "6)  Saturn") || strings.Count(v, "\n") != len(opts) {
		t.Errorf("unexpected view:\n%s", v)
	}
}

func TestMultiChoice_UpStopsAtTop(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Fatalf("Selected = %d, want 0", m.Selected)
	}
}
