package session

// view is the scroll state shared with the renderer. Positions are
// paragraphs (buffer rows).
type view struct {
	top    int
	height int
}

func (v *view) ScrollTop() int { return v.top }

func (v *view) SetScrollTop(top int) { v.top = max(top, 0) }

func (v *view) setTop(top, lines int) {
	v.top = min(max(top, 0), max(lines-1, 0))
}

// follow scrolls the minimum amount that makes row visible.
func (v *view) follow(row int) {
	if row < v.top {
		v.top = row
	}
	if row >= v.top+v.height {
		v.top = row - v.height + 1
	}
	v.top = max(v.top, 0)
}

// SetViewHeight sets how many paragraphs are visible at once.
func (s *Session) SetViewHeight(h int) {
	s.view.height = max(h, 1)
	s.view.follow(s.buf.Cursor().Row)
}

func (s *Session) ViewHeight() int { return s.view.height }

// ScrollTop returns the first visible paragraph.
func (s *Session) ScrollTop() int { return s.view.top }

// SetScrollTop scrolls to paragraph top, clamped to the document.
func (s *Session) SetScrollTop(top int) { s.view.setTop(top, s.buf.LineCount()) }
