package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/meridian/internal/geo"
	"github.com/papapumpkin/meridian/internal/interact"
)

// MenuAction identifies what a context menu item does.
type MenuAction int

const (
	// MenuOpenMap opens the clicked location in the external map.
	MenuOpenMap MenuAction = iota
	// MenuCopy copies the clicked coordinates to the clipboard.
	MenuCopy
	// MenuReload re-reads the settings file.
	MenuReload
	// MenuAbout shows the about box.
	MenuAbout
	// MenuExit quits the overlay.
	MenuExit
	// MenuSeparator is a divider row and cannot be selected.
	MenuSeparator
)

// MenuItem is one row of the context menu.
type MenuItem struct {
	Label  string
	Action MenuAction
}

// ContextMenu is the popup raised by a right click. Col and Row locate its
// top-left corner in terminal cells.
type ContextMenu struct {
	Items  []MenuItem
	Cursor int
	Col    int
	Row    int
	Geo    geo.GeoPoint
	HasGeo bool
}

// NewContextMenu builds the menu for a context request. Location items are
// offered only when the request carries coordinates.
func NewContextMenu(a interact.Action, col, row int) *ContextMenu {
	m := &ContextMenu{Col: col, Row: row, Geo: a.Geo, HasGeo: a.HasGeo}
	if a.HasGeo {
		m.Items = append(m.Items,
			MenuItem{Label: interact.OpenMapLabel(a.Geo), Action: MenuOpenMap},
			MenuItem{Label: "Copy coordinates", Action: MenuCopy},
			MenuItem{Action: MenuSeparator},
		)
	}
	m.Items = append(m.Items,
		MenuItem{Label: "Reload settings", Action: MenuReload},
		MenuItem{Label: "About", Action: MenuAbout},
		MenuItem{Action: MenuSeparator},
		MenuItem{Label: "Exit", Action: MenuExit},
	)
	return m
}

// MoveUp selects the previous selectable item, wrapping at the top.
func (m *ContextMenu) MoveUp() {
	m.move(-1)
}

// MoveDown selects the next selectable item, wrapping at the bottom.
func (m *ContextMenu) MoveDown() {
	m.move(1)
}

func (m *ContextMenu) move(step int) {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		next := ((m.Cursor+step*i)%n + n) % n
		if m.Items[next].Action != MenuSeparator {
			m.Cursor = next
			return
		}
	}
}

// Selected returns the highlighted item.
func (m *ContextMenu) Selected() MenuItem {
	return m.Items[m.Cursor]
}

// View renders the menu box.
func (m *ContextMenu) View() string {
	width := 0
	for _, it := range m.Items {
		width = max(width, lipgloss.Width(it.Label))
	}
	width += 2 // indicator and space

	rows := make([]string, len(m.Items))
	for i, it := range m.Items {
		switch {
		case it.Action == MenuSeparator:
			rows[i] = styleMenuItem.Render(strings.Repeat("─", width))
		case i == m.Cursor:
			rows[i] = styleMenuSelected.Width(width).Render(selectionIndicator + " " + it.Label)
		default:
			rows[i] = styleMenuItem.Width(width).Render("  " + it.Label)
		}
	}
	return styleMenuBox.Render(strings.Join(rows, "\n"))
}

// Fit moves the menu so the whole box is inside a cols by rows screen.
func (m *ContextMenu) Fit(cols, rows int) {
	view := m.View()
	w, h := lipgloss.Width(view), lipgloss.Height(view)
	m.Col = max(0, min(m.Col, cols-w))
	m.Row = max(0, min(m.Row, rows-h))
}

// ItemAt returns the index of the selectable item drawn at the given cell.
func (m *ContextMenu) ItemAt(col, row int) (int, bool) {
	view := m.View()
	w := lipgloss.Width(view)
	if col < m.Col || col >= m.Col+w {
		return 0, false
	}
	// One border row above the first item.
	i := row - m.Row - 1
	if i < 0 || i >= len(m.Items) || m.Items[i].Action == MenuSeparator {
		return 0, false
	}
	return i, true
}

// Contains reports whether the cell is inside the menu box.
func (m *ContextMenu) Contains(col, row int) bool {
	view := m.View()
	w, h := lipgloss.Width(view), lipgloss.Height(view)
	return col >= m.Col && col < m.Col+w && row >= m.Row && row < m.Row+h
}
