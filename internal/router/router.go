// Package router keeps the stack of screens the app shows, with the
// active screen on top.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/homeworkpal/internal/screen"
)

// Navigation messages. Screens return them from commands; the router
// handles them before anything reaches the active screen.
type (
	PushScreenMsg    struct{ Screen screen.Screen }
	ReplaceScreenMsg struct{ Screen screen.Screen }
	PopScreenMsg     struct{}
	PopToRootMsg     struct{}
)

// Router is a stack of screens. The bottom screen is never removed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push makes s the active screen and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the active screen and refreshes the one below it.
func (r *Router) Pop() tea.Cmd {
	return r.truncate(len(r.stack) - 1)
}

// PopToRoot drops everything above the root screen.
func (r *Router) PopToRoot() tea.Cmd {
	return r.truncate(1)
}

// Replace swaps the active screen for s. The root can be replaced too.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	top := len(r.stack) - 1
	closeScreen(r.stack[top])
	r.stack[top] = s
	return s.Init()
}

// truncate shrinks the stack to n screens, closing the removed ones.
func (r *Router) truncate(n int) tea.Cmd {
	n = max(n, 1)
	if n >= len(r.stack) {
		return nil
	}
	for _, s := range r.stack[n:] {
		closeScreen(s)
	}
	clear(r.stack[n:])
	r.stack = r.stack[:n]

	if rf, ok := r.Active().(screen.Refresher); ok {
		return rf.Refresh()
	}
	return nil
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}

	top := len(r.stack) - 1
	if top < 0 {
		return nil
	}
	var cmd tea.Cmd
	r.stack[top], cmd = r.stack[top].Update(msg)
	return cmd
}

func (r *Router) View(width, height int) string {
	if a := r.Active(); a != nil {
		return a.View(width, height)
	}
	return ""
}
