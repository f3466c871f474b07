package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/homeworkpal/internal/assignment"
	"github.com/abhisek/homeworkpal/internal/router"
	"github.com/abhisek/homeworkpal/internal/screen"
)

type noQuests struct{}

func (noQuests) List(context.Context) ([]assignment.Assignment, error) { return nil, nil }
func (noQuests) ReadOnly() bool                                        { return true }

type plainScreen struct{ closed bool }

func (s *plainScreen) Init() tea.Cmd                           { return nil }
func (s *plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *plainScreen) View(int, int) string                    { return "a plain screen" }
func (s *plainScreen) Title() string                           { return "Plain" }
func (s *plainScreen) Close()                                  { s.closed = true }

func sized(t *testing.T) model {
	t.Helper()
	m := newModel(Options{Quests: noQuests{}})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(model)
}

func TestModel_EscPopsAndClosesScreen(t *testing.T) {
	m := sized(t)
	plain := &plainScreen{}
	m.Update(router.PushScreenMsg{Screen: plain})

	frame := m.frame()
	if !strings.Contains(frame, "Plain") || !strings.Contains(frame, "a plain screen") {
		t.Fatalf("expected the pushed screen in the frame:\n%s", frame)
	}
	if !strings.Contains(frame, "Esc") {
		t.Error("expected the nested key hints")
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 || !plain.closed {
		t.Fatalf("expected esc to pop and close, depth=%d closed=%v", m.router.Depth(), plain.closed)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Fatal("esc on the home screen must not pop it")
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := sized(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestModel_HomeTitleInHeader(t *testing.T) {
	m := sized(t)
	if !strings.Contains(m.frame(), "Homework Pal") {
		t.Error("expected the brand in the header")
	}
}
