package session

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/buffer"
)

// mutate runs fn against the buffer and, if the text changed, splices the
// paint to follow every applied edit and marks the document dirty. It
// reports whether the text changed.
func (s *Session) mutate(fn func()) bool {
	before := s.buf.TextVersion()
	fn()
	if s.buf.TextVersion() == before {
		return false
	}
	if ch, ok := s.buf.LastChange(); ok {
		for _, e := range ch.AppliedEdits {
			s.paint.Splice(e.StartOffset, e.DeletedRunes, e.InsertedRunes)
		}
	}
	if !s.suppressDirty {
		s.dirty = true
	}
	return true
}

// edit applies a keyboard edit. While the find bar is open the MatchSet is
// moved to the pending-clear set and recomputation waits for the longer find
// quiet period; otherwise a plain re-highlight is scheduled.
func (s *Session) edit(fn func()) tea.Cmd {
	if !s.mutate(fn) {
		s.afterMove()
		return nil
	}
	s.view.follow(s.buf.Cursor().Row)

	var cmd tea.Cmd
	if s.bar.Visible() {
		s.coord.MarkStale()
		cmd = s.timer.Restart(s.cfg.Find.QuietPeriod.D())
	} else {
		cmd = s.timer.Restart(s.cfg.Highlight.QuietPeriod.D())
	}
	s.notify()
	return cmd
}

func (s *Session) afterMove() {
	s.view.follow(s.buf.Cursor().Row)
	s.notify()
}

// InsertText types text at the caret, replacing the selection.
func (s *Session) InsertText(text string) tea.Cmd {
	return s.edit(func() { s.buf.InsertText(text) })
}

// Newline breaks the line and copies the current line's leading whitespace.
func (s *Session) Newline() tea.Cmd {
	return s.edit(s.buf.InsertNewlineIndent)
}

func (s *Session) Backspace() tea.Cmd { return s.edit(s.buf.DeleteBackward) }

func (s *Session) Delete() tea.Cmd { return s.edit(s.buf.DeleteForward) }

// Tab indents every line of a multi-line selection, or types the indent.
func (s *Session) Tab() tea.Cmd {
	return s.edit(func() {
		if !s.buf.IndentSelection() {
			s.buf.InsertText(s.buf.Indent())
		}
	})
}

// DeleteToBoundary deletes the whitespace or word run after the caret.
func (s *Session) DeleteToBoundary() tea.Cmd {
	return s.edit(s.buf.DeleteToBoundary)
}

// Apply applies raw text edits as keyboard input would.
func (s *Session) Apply(edits ...buffer.TextEdit) tea.Cmd {
	return s.edit(func() { s.buf.Apply(edits...) })
}

func (s *Session) Move(m buffer.Move) {
	s.buf.Move(m)
	s.afterMove()
}

func (s *Session) SetCursor(p buffer.Pos) {
	s.buf.SetCursor(p)
	s.afterMove()
}

// Select selects the rune range [start, end) with the caret at end.
func (s *Session) Select(start, end int) {
	s.selectOffsets(start, end)
	s.afterMove()
}

// SelectFrom selects from anchor to p and leaves the caret at p.
func (s *Session) SelectFrom(anchor, p buffer.Pos) {
	s.buf.SetSelection(buffer.Range{Start: anchor, End: p})
	s.afterMove()
}

func (s *Session) selectOffsets(start, end int) {
	if start == end {
		s.buf.SetCursor(s.buf.PosFromOffset(start))
		return
	}
	s.buf.SetSelection(s.buf.RangeFromOffsets(start, end))
}

// SelectedText returns the selected text, or "" without a selection.
func (s *Session) SelectedText() string {
	r, ok := s.buf.Selection()
	if !ok {
		return ""
	}
	return s.buf.TextInRange(r)
}
