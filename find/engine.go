package find

import (
	"log/slog"
	"time"
	"unicode/utf8"
)

// DefaultMinChars is the shortest query that triggers a search.
const DefaultMinChars = 3

// Engine owns the MatchSet: the ordered matches of the current query and the
// index of the current match (-1 iff there are no matches).
type Engine struct {
	surface Surface

	query       Query
	replacement string

	matches []Match
	current int
	// version is the surface text version matches were computed against.
	version uint64
	// carry is the current index remembered across Take.
	carry int

	status   Status
	minChars int
	timeout  time.Duration
	log      *slog.Logger
}

type Option func(*Engine)

func WithMinChars(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minChars = n
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func NewEngine(s Surface, opts ...Option) *Engine {
	e := &Engine{
		surface:  s,
		current:  -1,
		carry:    -1,
		minChars: DefaultMinChars,
		timeout:  DefaultTimeout,
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Query() Query { return e.query }

// SetQuery replaces the query. It does not search.
func (e *Engine) SetQuery(q Query) { e.query = q }

func (e *Engine) Replacement() string { return e.replacement }

func (e *Engine) SetReplacement(s string) { e.replacement = s }

// SetMinChars changes the minimum query length. Values below 1 are ignored.
func (e *Engine) SetMinChars(n int) {
	if n > 0 {
		e.minChars = n
	}
}

func (e *Engine) MinChars() int { return e.minChars }

// SetTimeout bounds later searches. Zero disables the bound.
func (e *Engine) SetTimeout(d time.Duration) { e.timeout = d }

// Matches returns a copy of the current MatchSet.
func (e *Engine) Matches() []Match {
	return append([]Match(nil), e.matches...)
}

// Current returns the current index, -1 when there are no matches.
func (e *Engine) Current() int { return e.current }

func (e *Engine) Status() Status { return e.status }

// RunSearch recomputes the MatchSet, selects the first match at or after the
// selection start (or the caret), wrapping to the first match, and scrolls it
// to the middle of the view.
func (e *Engine) RunSearch() Status {
	e.search(true)
	return e.status
}

// RunSearchHighlightOnly recomputes and repaints the MatchSet without moving
// the caret, the selection or the view. The current index survives when it
// is still in range.
func (e *Engine) RunSearchHighlightOnly() Status {
	e.search(false)
	return e.status
}

func (e *Engine) search(move bool) {
	keep := e.current
	if keep < 0 {
		keep = e.carry
	}
	e.carry = -1

	e.untagAll()
	e.matches = nil
	e.current = -1
	e.version = e.surface.TextVersion()

	if e.query.Text == "" {
		e.status = Status{Kind: StatusIdle}
		return
	}
	if utf8.RuneCountInString(e.query.Text) < e.minChars {
		e.status = Status{Kind: StatusTooShort, MinChars: e.minChars}
		return
	}

	ms, err := FindAll(e.surface.Text(), e.query, e.timeout)
	if err != nil {
		e.log.Debug("find: no matches", "query", e.query.Text, "regex", e.query.UseRegex, "err", err)
	}
	if len(ms) == 0 {
		e.status = Status{Kind: StatusNoMatches}
		return
	}
	e.matches = ms

	switch {
	case move:
		anchor := e.surface.Caret()
		if start, _, ok := e.surface.Selection(); ok {
			anchor = start
		}
		e.current = e.firstAtOrAfter(anchor)
	case keep >= 0 && keep < len(ms):
		e.current = keep
	default:
		e.current = e.firstAtOrAfter(e.surface.Caret())
	}

	for _, m := range ms {
		e.surface.AddTag(m.Start, m.End, TagHit)
	}
	cur := ms[e.current]
	e.surface.AddTag(cur.Start, cur.End, TagCurrent)
	e.updateStatus()

	if move {
		e.selectCurrent()
	}
}

// firstAtOrAfter returns the index of the first match starting at or after
// offset, or 0 when none does.
func (e *Engine) firstAtOrAfter(offset int) int {
	for i, m := range e.matches {
		if m.Start >= offset {
			return i
		}
	}
	return 0
}

func (e *Engine) GotoNext() { e.step(1) }

func (e *Engine) GotoPrev() { e.step(-1) }

func (e *Engine) step(delta int) {
	n := len(e.matches)
	if n == 0 {
		return
	}
	if e.current >= 0 && e.current < n {
		old := e.matches[e.current]
		e.surface.RemoveTag(old.Start, old.End, TagCurrent)
	}
	e.current = ((e.current+delta)%n + n) % n
	cur := e.matches[e.current]
	e.surface.AddTag(cur.Start, cur.End, TagCurrent)
	e.updateStatus()
	e.selectCurrent()
}

// ReplaceOne substitutes the current match with the replacement text and
// searches again. It reports whether the text changed. A match already equal
// to the replacement is skipped: the search continues after it.
func (e *Engine) ReplaceOne() bool {
	if !e.ensureFresh() || e.current < 0 {
		return false
	}
	m := e.matches[e.current]
	e.untagAll()
	changed := e.replace(m)
	e.matches = nil
	e.current = -1
	if !changed {
		e.surface.Select(m.End, m.End)
	}
	e.RunSearch()
	return changed
}

// ReplaceAll substitutes every match, last to first, and searches again. It
// returns the number of matches whose text changed.
func (e *Engine) ReplaceAll() int {
	if !e.ensureFresh() || len(e.matches) == 0 {
		return 0
	}
	ms := e.matches
	e.untagAll()
	e.matches = nil
	e.current = -1
	n := 0
	for i := len(ms) - 1; i >= 0; i-- {
		if e.replace(ms[i]) {
			n++
		}
	}
	e.RunSearch()
	return n
}

// replace substitutes m and reports whether the surface text changed.
func (e *Engine) replace(m Match) bool {
	before := e.surface.TextVersion()
	e.surface.Replace(m.Start, m.End, e.replacement)
	return e.surface.TextVersion() != before
}

// ensureFresh refreshes a MatchSet computed against older text, and reports
// whether there is anything to replace.
func (e *Engine) ensureFresh() bool {
	if e.version != e.surface.TextVersion() || (e.matches == nil && e.carry >= 0) {
		e.RunSearchHighlightOnly()
	}
	return len(e.matches) > 0
}

// Take moves the MatchSet out of the engine without touching the surface
// tags, leaving the engine empty. The current index is remembered for the
// next highlight-only search.
func (e *Engine) Take() []Match {
	ms := e.matches
	if e.current >= 0 {
		e.carry = e.current
	}
	e.matches = nil
	e.current = -1
	return ms
}

// Clear removes all match tags and empties the MatchSet.
func (e *Engine) Clear() {
	e.untagAll()
	e.matches = nil
	e.current = -1
	e.carry = -1
	e.status = Status{Kind: StatusIdle}
}

// Retag paints the current MatchSet again. It is used after a repaint that
// may have stripped match tags.
func (e *Engine) Retag() {
	for _, m := range e.matches {
		e.surface.AddTag(m.Start, m.End, TagHit)
	}
	if e.current >= 0 && e.current < len(e.matches) {
		cur := e.matches[e.current]
		e.surface.AddTag(cur.Start, cur.End, TagCurrent)
	}
}

func (e *Engine) untagAll() {
	for _, m := range e.matches {
		e.surface.RemoveTag(m.Start, m.End, TagHit)
		e.surface.RemoveTag(m.Start, m.End, TagCurrent)
	}
}

func (e *Engine) updateStatus() {
	if len(e.matches) == 0 {
		e.status = Status{Kind: StatusNoMatches}
		return
	}
	e.status = Status{Kind: StatusMatches, Current: e.current + 1, Total: len(e.matches)}
}

// selectCurrent selects the current match and scrolls so its paragraph sits
// in the middle of the visible paragraphs.
func (e *Engine) selectCurrent() {
	cur := e.matches[e.current]
	e.surface.Select(cur.Start, cur.End)
	target := e.surface.ParagraphAt(cur.Start) - e.surface.VisibleParagraphs()/2
	if target < 0 {
		target = 0
	}
	e.surface.ShowParagraphAtTop(target)
}
