package overlay

import (
	"log/slog"

	"github.com/iw2rmb/inkwell/find"
	"github.com/iw2rmb/inkwell/highlight"
)

// Source is the text a Coordinator paints.
type Source interface {
	Text() string
	// Len returns the text length in runes.
	Len() int
}

// Scroller exposes the view's scroll position so it survives a repaint.
type Scroller interface {
	ScrollTop() int
	SetScrollTop(int)
}

// Searcher is the part of find.Engine the Coordinator drives.
type Searcher interface {
	Matches() []find.Match
	Current() int
	Take() []find.Match
	RunSearchHighlightOnly() find.Status
	Retag()
}

// Coordinator composes syntax tokens and find matches into one Paint and runs
// the stale-highlight protocol.
//
// While stale, the MatchSet lives in the pending-clear set, the engine is
// empty, and token repaints are suppressed until Settle.
type Coordinator struct {
	paint     *Paint
	src       Source
	tokenizer highlight.Tokenizer
	search    Searcher
	scroll    Scroller
	log       *slog.Logger

	stale        bool
	pendingClear []find.Match
	repaints     int

	caret int
	pairs []Decoration
}

type CoordinatorOption func(*Coordinator)

func WithScroller(s Scroller) CoordinatorOption {
	return func(c *Coordinator) { c.scroll = s }
}

func WithLogger(l *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

func NewCoordinator(p *Paint, src Source, tok highlight.Tokenizer, search Searcher, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		paint:     p,
		src:       src,
		tokenizer: tok,
		search:    search,
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Coordinator) Paint() *Paint { return c.paint }

// SetTokenizer swaps the tokenizer used by later repaints.
func (c *Coordinator) SetTokenizer(t highlight.Tokenizer) { c.tokenizer = t }

func (c *Coordinator) Stale() bool { return c.stale }

// PendingClear returns the match ranges waiting to be un-styled.
func (c *Coordinator) PendingClear() []find.Match {
	return append([]find.Match(nil), c.pendingClear...)
}

// Repaints counts token repaints, for tests and diagnostics.
func (c *Coordinator) Repaints() int { return c.repaints }

// Repaint tokenizes the whole text and repaints tokens with the current
// MatchSet on top. It is a no-op while stale and reports whether it ran.
func (c *Coordinator) Repaint() bool {
	if c.stale {
		return false
	}

	top := -1
	if c.scroll != nil {
		top = c.scroll.ScrollTop()
	}

	text := c.src.Text()
	n := c.src.Len()
	var tokens []highlight.Token
	if c.tokenizer != nil {
		tokens = c.tokenizer.Tokenize(text)
	}
	c.pairs = PairDecorations([]rune(text), c.caret)
	decorations := append(MatchDecorations(c.search.Matches(), c.search.Current()), c.pairs...)
	c.paint.Reset(Merge(highlight.Adapt(tokens, n), decorations), n)
	c.repaints++

	if c.scroll != nil && top >= 0 {
		c.scroll.SetScrollTop(top)
	}
	return true
}

// MarkPairs moves the bracket and quote pair tags to the pair around caret.
// It works on the paint directly, so it also runs while stale.
func (c *Coordinator) MarkPairs(caret int) {
	c.caret = caret
	for _, tag := range PairTags {
		c.paint.Strip(tag)
	}
	c.pairs = PairDecorations([]rune(c.src.Text()), caret)
	for _, d := range c.pairs {
		c.paint.AddTag(d.Start, d.End, d.Tag)
	}
}

// Pairs returns the pair decorations currently painted.
func (c *Coordinator) Pairs() []Decoration {
	return append([]Decoration(nil), c.pairs...)
}

// MarkStale moves the MatchSet into the pending-clear set and suppresses
// repaints until Settle. The set stays painted until then.
func (c *Coordinator) MarkStale() {
	taken := c.search.Take()
	c.pendingClear = append(c.pendingClear, taken...)
	c.stale = true
}

// Settle runs when the quiet period after the last edit elapses: tokens are
// repainted, matches recomputed without moving the caret, and the ranges of
// the pending-clear set un-styled before it is dropped.
func (c *Coordinator) Settle() {
	c.stale = false
	c.Repaint()
	st := c.search.RunSearchHighlightOnly()
	cleared := len(c.pendingClear)
	c.clearPending()
	// A new match may overlap a range cleared above.
	c.search.Retag()
	c.log.Debug("overlay: settled", "matches", st.Total, "cleared", cleared)
}

// Discard un-styles and drops the pending-clear set and leaves the stale
// state.
func (c *Coordinator) Discard() {
	c.clearPending()
	c.stale = false
}

func (c *Coordinator) clearPending() {
	for _, m := range c.pendingClear {
		c.paint.RemoveTag(m.Start, m.End, find.TagHit)
		c.paint.RemoveTag(m.Start, m.End, find.TagCurrent)
	}
	c.pendingClear = nil
}
