package components

import tea "charm.land/bubbletea/v2"

// MenuItem is one selectable row. Action runs on Enter.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu tracks the cursor over a list of items. Rendering is left to the
// screen that owns it, which knows how much room it has.
type Menu struct {
	Items    []MenuItem
	Selected int

	// Page is how far PgUp/PgDn move. Zero means one row.
	Page int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the cursor (wrapping at both ends) or fires the selected
// item's action.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.move(-1, true)
	case "down", "j":
		m.move(1, true)
	case "pgup":
		m.move(-max(m.Page, 1), false)
	case "pgdown":
		m.move(max(m.Page, 1), false)
	case "home", "g":
		m.Selected = 0
	case "end", "G":
		m.Selected = len(m.Items) - 1
	case "enter":
		if a := m.Items[m.Selected].Action; a != nil {
			return m, a()
		}
	}
	return m, nil
}

func (m *Menu) move(delta int, wrap bool) {
	n := len(m.Items)
	next := m.Selected + delta
	if wrap {
		m.Selected = (next%n + n) % n
		return
	}
	m.Selected = min(max(next, 0), n-1)
}

// Window returns the half-open range of items to draw in rows lines so
// that the selection stays visible.
func (m Menu) Window(rows int) (start, end int) {
	rows = max(rows, 1)
	if m.Selected >= rows {
		start = m.Selected - rows + 1
	}
	return start, min(len(m.Items), start+rows)
}
