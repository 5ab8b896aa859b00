package editor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Clipboard provides editor-level clipboard integration.
//
// Errors must not crash the UI; failures are reported in the status line.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

func (m *Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s := m.sess.SelectedText()
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.message = "copy failed: " + err.Error()
	}
}

func (m *Model) cutSelection() tea.Cmd {
	if m.cfg.Clipboard == nil || m.sess.SelectedText() == "" {
		return nil
	}
	m.copySelection()
	return m.sess.Backspace()
}

func (m *Model) pasteClipboard() tea.Cmd {
	if m.cfg.Clipboard == nil {
		return nil
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.message = "paste failed: " + err.Error()
		return nil
	}
	if s == "" {
		return nil
	}
	return m.sess.InsertText(normalizeNewlines(s))
}

// normalizeNewlines maps CRLF and CR line endings from external sources to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
