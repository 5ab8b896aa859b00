package session

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/find"
	"github.com/iw2rmb/inkwell/findbar"
)

func (s *Session) FindMode() findbar.Mode { return s.bar.Mode() }

func (s *Session) FindVisible() bool { return s.bar.Visible() }

func (s *Session) Query() find.Query { return s.engine.Query() }

func (s *Session) Replacement() string { return s.engine.Replacement() }

func (s *Session) Matches() []find.Match { return s.engine.Matches() }

// CurrentMatch returns the current match index, -1 without matches.
func (s *Session) CurrentMatch() int { return s.engine.Current() }

func (s *Session) FindStatus() find.Status { return s.engine.Status() }

// ToggleFind opens the find bar, switches it from replace mode, or closes
// it when find-only mode is already open.
func (s *Session) ToggleFind() { s.transition(s.bar.ToggleFind()) }

// ToggleFindReplace opens the bar with the replace field, switches to it, or
// closes the bar when replace mode is already open.
func (s *Session) ToggleFindReplace() { s.transition(s.bar.ToggleReplace()) }

// Escape closes the find bar.
func (s *Session) Escape() { s.transition(s.bar.Escape()) }

func (s *Session) transition(t findbar.Transition) {
	switch {
	case t.Opened():
		s.open()
	case t.Closed():
		s.close()
	}
	s.log.Debug("session: find bar", "from", t.From.String(), "to", t.To.String())
	s.notify()
}

// open seeds the query from the selection, or starts with an empty query
// and no highlights.
func (s *Session) open() {
	q := s.engine.Query()
	if sel := s.SelectedText(); sel != "" {
		q.Text = sel
		s.engine.SetQuery(q)
		s.engine.RunSearch()
		return
	}
	q.Text = ""
	s.engine.SetQuery(q)
	s.engine.Clear()
}

// close drops every match overlay and repaints tokens synchronously.
func (s *Session) close() {
	s.timer.Cancel()
	s.coord.Discard()
	s.engine.Clear()
	s.coord.Repaint()
}

// SetQuery replaces the query and searches immediately.
func (s *Session) SetQuery(q find.Query) {
	s.settleIfStale()
	s.engine.SetQuery(q)
	if s.bar.Visible() {
		s.engine.RunSearch()
	}
	s.notify()
}

// SetQueryText changes only the query text.
func (s *Session) SetQueryText(text string) {
	q := s.engine.Query()
	q.Text = text
	s.SetQuery(q)
}

func (s *Session) ToggleCaseSensitive() {
	q := s.engine.Query()
	q.CaseSensitive = !q.CaseSensitive
	s.SetQuery(q)
}

func (s *Session) ToggleWholeWord() {
	q := s.engine.Query()
	q.WholeWord = !q.WholeWord
	s.SetQuery(q)
}

func (s *Session) ToggleRegex() {
	q := s.engine.Query()
	q.UseRegex = !q.UseRegex
	s.SetQuery(q)
}

func (s *Session) SetReplacement(text string) { s.engine.SetReplacement(text) }

func (s *Session) Next() {
	s.settleIfStale()
	s.engine.GotoNext()
	s.notify()
}

func (s *Session) Prev() {
	s.settleIfStale()
	s.engine.GotoPrev()
	s.notify()
}

// ReplaceOne replaces the current match. It is a no-op without one or
// outside replace mode. A match equal to the replacement is stepped over.
func (s *Session) ReplaceOne() tea.Cmd {
	if !s.bar.ReplaceEnabled() {
		return nil
	}
	s.settleIfStale()
	if !s.engine.ReplaceOne() {
		s.afterMove()
		return nil
	}
	return s.afterReplace(1)
}

// ReplaceAll replaces every match and returns the count with the repaint
// command.
func (s *Session) ReplaceAll() (int, tea.Cmd) {
	if !s.bar.ReplaceEnabled() {
		return 0, nil
	}
	s.settleIfStale()
	n := s.engine.ReplaceAll()
	if n == 0 {
		s.afterMove()
		return 0, nil
	}
	return n, s.afterReplace(n)
}

func (s *Session) afterReplace(n int) tea.Cmd {
	s.log.Debug("session: replaced", "count", n, "query", s.engine.Query().Text)
	s.view.follow(s.buf.Cursor().Row)
	s.notify()
	return s.timer.Restart(s.cfg.Highlight.QuietPeriod.D())
}
