package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected is true for the row under the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a generic scrolling list. The zero value is not usable; call New.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]

	// cursor is the selected index; offset is the first rendered index.
	cursor int
	offset int
	height int
}

// New creates a list showing height rows at a time.
func New[T any](items []T, height int, render RenderFunc[T]) *Model[T] {
	m := &Model[T]{items: items, render: render}
	m.SetHeight(height)
	return m
}

// SetItems replaces the items and moves the cursor to the top.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor = 0
	m.offset = 0
}

// SetHeight resizes the viewport. Heights below one are treated as one.
func (m *Model[T]) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	m.height = height
	m.scroll()
}

// Update moves the cursor for navigation keys and reports whether msg was one.
//
//nolint:exhaustive // only navigation keys are handled
func (m *Model[T]) Update(msg tea.KeyMsg) bool {
	if len(m.items) == 0 {
		return false
	}

	switch msg.Type {
	case tea.KeyUp:
		m.move(-1)
	case tea.KeyDown:
		m.move(1)
	case tea.KeyPgUp:
		m.move(-m.height)
	case tea.KeyPgDown:
		m.move(m.height)
	case tea.KeyHome:
		m.Select(0)
	case tea.KeyEnd:
		m.Select(len(m.items) - 1)
	case tea.KeyRunes:
		switch msg.String() {
		case "k":
			m.move(-1)
		case "j":
			m.move(1)
		case "g":
			m.Select(0)
		case "G":
			m.Select(len(m.items) - 1)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func (m *Model[T]) move(delta int) {
	m.Select(m.cursor + delta)
}

// Select moves the cursor to index, clamped to the item range.
func (m *Model[T]) Select(index int) {
	switch {
	case len(m.items) == 0 || index < 0:
		index = 0
	case index >= len(m.items):
		index = len(m.items) - 1
	}
	m.cursor = index
	m.scroll()
}

// scroll keeps the cursor inside [offset, offset+height).
func (m *Model[T]) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if maxOffset := len(m.items) - m.height; m.offset > maxOffset {
		m.offset = max(maxOffset, 0)
	}
}

// View renders the rows currently in the window, one per line.
func (m *Model[T]) View() string {
	from, to := m.Window()
	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.render(m.items[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// Window returns the half-open range of indexes that View renders.
func (m *Model[T]) Window() (int, int) {
	return m.offset, min(m.offset+m.height, len(m.items))
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Cursor returns the selected index.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// Selected returns the item under the cursor. ok is false for an empty list.
func (m *Model[T]) Selected() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.cursor], true
}
