package editor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/config"
	"github.com/iw2rmb/inkwell/debounce"
	"github.com/iw2rmb/inkwell/findbar"
	"github.com/iw2rmb/inkwell/runner"
)

// ConfigMsg delivers a reloaded configuration, or the error that prevented
// loading it.
type ConfigMsg struct {
	Config config.Config
	Err    error
}

// SavedMsg reports the outcome of a save started with the Save binding.
type SavedMsg struct {
	TextVersion uint64
	Err         error
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	case debounce.FireMsg:
		m.sess.HandleTimer(msg)
	case runner.ResultMsg:
		m.handleResult(runner.Result(msg))
	case SavedMsg:
		m.handleSaved(msg)
	case ConfigMsg:
		if msg.Err != nil {
			m.message = "config: " + msg.Err.Error()
			break
		}
		m = m.ApplyConfig(msg.Config)
		m.message = "config reloaded"
	}
	m.layout()
	m.rebuildContent()
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if m.focus != focusEditor {
			return m.updateField(msg)
		}
		return m, m.sess.InsertText(normalizeNewlines(string(msg.Runes)))
	}

	km := m.keyMap
	prev := m.sess.FindMode()

	switch {
	case key.Matches(msg, km.Find):
		m.sess.ToggleFind()
		m.syncBar(prev)
		return m, nil
	case key.Matches(msg, km.FindReplace):
		m.sess.ToggleFindReplace()
		m.syncBar(prev)
		return m, nil
	case key.Matches(msg, km.Close):
		if m.sess.FindVisible() {
			m.sess.Escape()
			m.syncBar(prev)
		} else if m.cfg.Runner != nil && m.cfg.Runner.Busy() {
			m.cfg.Runner.Cancel()
		}
		return m, nil
	case key.Matches(msg, km.LineNumbers):
		m.showLineNums = !m.showLineNums
		return m, nil
	case key.Matches(msg, km.Save):
		return m, m.save()
	case key.Matches(msg, km.Run):
		cmd := m.run()
		return m, cmd
	}

	if m.sess.FindVisible() {
		switch {
		case key.Matches(msg, km.CaseSensitive):
			m.sess.ToggleCaseSensitive()
			return m, nil
		case key.Matches(msg, km.WholeWord):
			m.sess.ToggleWholeWord()
			return m, nil
		case key.Matches(msg, km.Regex):
			m.sess.ToggleRegex()
			return m, nil
		case key.Matches(msg, km.Prev):
			m.sess.Prev()
			return m, nil
		case key.Matches(msg, km.Next):
			// Enter in the text area is a newline.
			if m.focus == focusEditor && msg.Type == tea.KeyEnter {
				break
			}
			m.sess.Next()
			return m, nil
		case key.Matches(msg, km.ReplaceOne):
			return m, m.sess.ReplaceOne()
		case key.Matches(msg, km.ReplaceAll) && m.focus == focusReplace:
			n, cmd := m.sess.ReplaceAll()
			m.message = fmt.Sprintf("replaced %d", n)
			return m, cmd
		case key.Matches(msg, km.FocusEditor):
			if m.focus == focusEditor {
				m.setFocus(focusFind)
			} else {
				m.setFocus(focusEditor)
			}
			return m, nil
		}
	}

	if m.focus != focusEditor {
		return m.updateField(msg)
	}
	return m.updateEditor(msg)
}

// updateField routes a key to the focused find bar field and pushes a changed
// value into the session.
func (m Model) updateField(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.NextField) {
		if m.focus == focusFind && m.sess.FindMode() == findbar.FindAndReplace {
			m.setFocus(focusReplace)
		} else {
			m.setFocus(focusFind)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusReplace {
		m.replaceInput, cmd = m.replaceInput.Update(msg)
		if v := m.replaceInput.Value(); v != m.sess.Replacement() {
			m.sess.SetReplacement(v)
		}
		return m, cmd
	}
	m.findInput, cmd = m.findInput.Update(msg)
	if v := m.findInput.Value(); v != m.sess.Query().Text {
		m.sess.SetQueryText(v)
	}
	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.keyMap
	move := func(unit buffer.MoveUnit, dir buffer.MoveDir, extend bool) (Model, tea.Cmd) {
		m.sess.Move(buffer.Move{Unit: unit, Dir: dir, Extend: extend})
		return m, nil
	}

	switch {
	case key.Matches(msg, km.Left):
		return move(buffer.MoveRune, buffer.DirLeft, false)
	case key.Matches(msg, km.Right):
		return move(buffer.MoveRune, buffer.DirRight, false)
	case key.Matches(msg, km.Up):
		return move(buffer.MoveRune, buffer.DirUp, false)
	case key.Matches(msg, km.Down):
		return move(buffer.MoveRune, buffer.DirDown, false)

	case key.Matches(msg, km.ShiftLeft):
		return move(buffer.MoveRune, buffer.DirLeft, true)
	case key.Matches(msg, km.ShiftRight):
		return move(buffer.MoveRune, buffer.DirRight, true)
	case key.Matches(msg, km.ShiftUp):
		return move(buffer.MoveRune, buffer.DirUp, true)
	case key.Matches(msg, km.ShiftDown):
		return move(buffer.MoveRune, buffer.DirDown, true)

	case key.Matches(msg, km.WordLeft):
		return move(buffer.MoveWord, buffer.DirLeft, false)
	case key.Matches(msg, km.WordRight):
		return move(buffer.MoveWord, buffer.DirRight, false)

	case key.Matches(msg, km.Home):
		return move(buffer.MoveLine, buffer.DirHome, false)
	case key.Matches(msg, km.End):
		return move(buffer.MoveLine, buffer.DirEnd, false)
	case key.Matches(msg, km.DocStart):
		return move(buffer.MoveDoc, buffer.DirHome, false)
	case key.Matches(msg, km.DocEnd):
		return move(buffer.MoveDoc, buffer.DirEnd, false)

	case key.Matches(msg, km.Backspace):
		return m, m.sess.Backspace()
	case key.Matches(msg, km.Delete):
		return m, m.sess.Delete()
	case key.Matches(msg, km.Enter):
		return m, m.sess.Newline()
	case key.Matches(msg, km.Tab):
		return m, m.sess.Tab()
	case key.Matches(msg, km.DeleteToBoundary):
		return m, m.sess.DeleteToBoundary()

	case key.Matches(msg, km.Copy):
		m.copySelection()
		return m, nil
	case key.Matches(msg, km.Cut):
		cmd := m.cutSelection()
		return m, cmd
	case key.Matches(msg, km.Paste):
		cmd := m.pasteClipboard()
		return m, cmd
	}

	switch {
	case msg.Type == tea.KeySpace:
		return m, m.sess.InsertText(" ")
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
		return m, m.sess.InsertText(string(msg.Runes))
	}
	return m, nil
}

func (m Model) save() tea.Cmd {
	if m.cfg.Save == nil {
		return nil
	}
	save := m.cfg.Save
	text := m.sess.GetEditorText()
	version := m.sess.Buffer().TextVersion()
	return func() tea.Msg {
		return SavedMsg{TextVersion: version, Err: save(text)}
	}
}

func (m *Model) handleSaved(msg SavedMsg) {
	if msg.Err != nil {
		m.message = "save failed: " + msg.Err.Error()
		return
	}
	// Edits typed while the write was in flight keep the document dirty.
	if m.sess.Buffer().TextVersion() == msg.TextVersion {
		m.sess.MarkClean()
	}
	m.message = "saved"
}

func (m *Model) run() tea.Cmd {
	w := m.cfg.Runner
	if w == nil {
		return nil
	}
	id, err := w.Submit(m.sess.GetEditorText())
	switch {
	case errors.Is(err, runner.ErrBusy):
		m.message = "script already running"
		return nil
	case err != nil:
		m.message = "run: " + err.Error()
		return nil
	}
	m.message = fmt.Sprintf("running script #%d", id)
	return w.Listen()
}

func (m *Model) handleResult(r runner.Result) {
	m.output = r.Output
	if r.Err != nil {
		m.message = fmt.Sprintf("script #%d failed: %v", r.ID, r.Err)
		return
	}
	first, _, _ := strings.Cut(strings.TrimSpace(r.Output), "\n")
	m.message = fmt.Sprintf("script #%d done in %s", r.ID, r.Elapsed.Round(time.Millisecond))
	if first != "" {
		m.message += ": " + first
	}
}
