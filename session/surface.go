package session

import "github.com/iw2rmb/inkwell/buffer"

// surface lets the find engine search and decorate the session's document.
type surface struct {
	s *Session
}

func (f *surface) Text() string        { return f.s.buf.Text() }
func (f *surface) TextVersion() uint64 { return f.s.buf.TextVersion() }
func (f *surface) Caret() int          { return f.s.buf.OffsetFromPos(f.s.buf.Cursor()) }

func (f *surface) Selection() (int, int, bool) {
	r, ok := f.s.buf.Selection()
	if !ok {
		return 0, 0, false
	}
	return f.s.buf.OffsetFromPos(r.Start), f.s.buf.OffsetFromPos(r.End), true
}

func (f *surface) Select(start, end int) { f.s.selectOffsets(start, end) }

func (f *surface) ParagraphAt(offset int) int { return f.s.buf.PosFromOffset(offset).Row }
func (f *surface) VisibleParagraphs() int     { return f.s.view.height }
func (f *surface) ShowParagraphAtTop(p int)   { f.s.view.setTop(p, f.s.buf.LineCount()) }

func (f *surface) AddTag(start, end int, tag string)    { f.s.paint.AddTag(start, end, tag) }
func (f *surface) RemoveTag(start, end int, tag string) { f.s.paint.RemoveTag(start, end, tag) }

// Replace is the engine's programmatic edit. It does not enter the stale
// protocol: the engine searches again right after replacing.
func (f *surface) Replace(start, end int, text string) {
	s := f.s
	s.mutate(func() {
		s.buf.ApplyProgrammatic(buffer.TextEdit{Range: s.buf.RangeFromOffsets(start, end), Text: text})
	})
}
