package editor

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/inkwell/buffer"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if isWheel(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
		m.sess.SetScrollTop(m.viewport.YOffset)
		return m, cmd
	}

	if !m.focused {
		return m, nil
	}

	// Only handle selection/cursor changes for left button interactions.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return m, nil
		}
		p := m.screenToDocPos(msg.X, msg.Y)
		if m.focus != focusEditor {
			m.setFocus(focusEditor)
		}
		if msg.Shift {
			anchor := m.sess.Buffer().Cursor()
			if raw, ok := m.sess.Buffer().SelectionRaw(); ok {
				anchor = raw.Start
			}
			m.mouseAnchor = anchor
			m.sess.SelectFrom(anchor, p)
		} else {
			m.mouseAnchor = p
			m.sess.SetCursor(p)
		}
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, nil
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		m.sess.SelectFrom(m.mouseAnchor, m.screenToDocPos(x, y))

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}
	return m, nil
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	x = min(max(x, 0), max(m.viewport.Width-1, 0))
	y = min(max(y, 0), max(m.viewport.Height-1, 0))
	return x, y
}

// screenToDocPos maps a cell in the text area to a buffer position. Cells
// inside an expanded tab or a wide rune map to that rune; cells past the line
// end map to the line end.
func (m Model) screenToDocPos(x, y int) buffer.Pos {
	buf := m.sess.Buffer()
	row := min(max(m.viewport.YOffset+y, 0), buf.LineCount()-1)
	x -= m.gutterWidth()
	if x <= 0 {
		return buffer.Pos{Row: row}
	}

	line := []rune(buf.Line(row))
	cells := 0
	for i, r := range line {
		w := runewidth.RuneWidth(r)
		if r == '\t' {
			w = m.tabWidth - cells%m.tabWidth
		}
		if x < cells+w {
			return buffer.Pos{Row: row, Col: i}
		}
		cells += w
	}
	return buffer.Pos{Row: row, Col: len(line)}
}
