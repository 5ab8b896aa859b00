package session

import (
	"fmt"

	"github.com/iw2rmb/inkwell/findbar"
)

// Status is what the outer status display shows.
type Status struct {
	// Row and Col are 1-based; Col counts runes.
	Row, Col int
	// Matches is the find summary: "", "Enter 3+ chars to search",
	// "0 matches" or "i/n matches".
	Matches string
	Dirty   bool
	Mode    findbar.Mode
}

// Cursor renders the caret position as "(col,row)".
func (st Status) Cursor() string {
	return fmt.Sprintf("(%d,%d)", st.Col, st.Row)
}

func (s *Session) Status() Status {
	c := s.buf.Cursor()
	st := Status{
		Row:   c.Row + 1,
		Col:   c.Col + 1,
		Dirty: s.dirty,
		Mode:  s.bar.Mode(),
	}
	if s.bar.Visible() {
		st.Matches = s.engine.Status().String()
	}
	return st
}

// notify moves the pair decoration to the caret and reports a changed
// status to the handler.
func (s *Session) notify() {
	s.coord.MarkPairs(s.buf.OffsetFromPos(s.buf.Cursor()))
	st := s.Status()
	if st == s.lastStatus {
		return
	}
	s.lastStatus = st
	if s.onStatus != nil {
		s.onStatus(st)
	}
}
