package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell/find"
	"github.com/iw2rmb/inkwell/highlight"
)

// doc is a minimal editing surface painting into a Paint.
type doc struct {
	text    []rune
	version uint64
	caret   int
	top     int
	paint   *Paint
}

func (d *doc) Text() string                   { return string(d.text) }
func (d *doc) Len() int                       { return len(d.text) }
func (d *doc) TextVersion() uint64            { return d.version }
func (d *doc) Caret() int                     { return d.caret }
func (d *doc) Selection() (int, int, bool)    { return 0, 0, false }
func (d *doc) Select(start, end int)          { d.caret = end }
func (d *doc) ParagraphAt(off int) int        { return strings.Count(string(d.text[:off]), "\n") }
func (d *doc) VisibleParagraphs() int         { return 4 }
func (d *doc) ShowParagraphAtTop(p int)       { d.top = p }
func (d *doc) AddTag(s, e int, tag string)    { d.paint.AddTag(s, e, tag) }
func (d *doc) RemoveTag(s, e int, tag string) { d.paint.RemoveTag(s, e, tag) }
func (d *doc) ScrollTop() int                 { return d.top }
func (d *doc) SetScrollTop(top int)           { d.top = top }

func (d *doc) Replace(start, end int, text string) {
	if string(d.text[start:end]) == text {
		return
	}
	ins := []rune(text)
	d.text = append(d.text[:start:start], append(ins, d.text[end:]...)...)
	d.paint.Splice(start, end-start, len(ins))
	d.version++
	d.caret = start + len(ins)
}

// wordTokenizer tags every "let" as a keyword.
var wordTokenizer = highlight.TokenizerFunc(func(text string) []highlight.Token {
	var out []highlight.Token
	r := []rune(text)
	for i := 0; i+3 <= len(r); i++ {
		if string(r[i:i+3]) == "let" {
			out = append(out, highlight.Token{Start: i, End: i + 2, Tags: highlight.Tags{"kw"}})
		}
	}
	return out
})

func setup(text string, q find.Query) (*doc, *find.Engine, *Coordinator) {
	d := &doc{text: []rune(text)}
	d.paint = NewPaint(len(d.text))
	e := find.NewEngine(d)
	e.SetQuery(q)
	c := NewCoordinator(d.paint, d, wordTokenizer, e, WithScroller(d))
	c.Repaint()
	return d, e, c
}

func tagged(p *Paint, tag string) []find.Match {
	var out []find.Match
	for _, s := range p.Spans() {
		if !s.Tags.Has(tag) {
			continue
		}
		if n := len(out); n > 0 && out[n-1].End == s.Start {
			out[n-1].End = s.End
			continue
		}
		out = append(out, find.Match{Start: s.Start, End: s.End})
	}
	return out
}

func TestCoordinator_RepaintComposesTokensAndMatches(t *testing.T) {
	d, e, c := setup("let foo = foo", find.Query{Text: "foo"})
	e.RunSearch()
	require.Len(t, e.Matches(), 2)

	require.True(t, c.Repaint())
	assert.Equal(t, []find.Match{{Start: 0, End: 3}}, tagged(d.paint, "kw"))
	assert.Equal(t, []find.Match{{Start: 4, End: 7}, {Start: 10, End: 13}}, tagged(d.paint, find.TagHit))
	assert.Equal(t, []find.Match{{Start: 4, End: 7}}, tagged(d.paint, find.TagCurrent))
	assert.Equal(t, d.Len(), highlight.Coverage(d.paint.Spans()))
}

func TestCoordinator_RepaintRestoresScroll(t *testing.T) {
	d, _, c := setup("a\nb\nc", find.Query{})
	d.top = 2
	c.Repaint()
	assert.Equal(t, 2, d.top)
}

func TestCoordinator_StaleProtocol(t *testing.T) {
	d, e, c := setup("let foo\nfoo let\nfoo", find.Query{Text: "foo"})
	e.RunSearch()
	before := e.Matches()
	require.Len(t, before, 3)
	repaints := c.Repaints()

	// edit while the find session is visible
	d.Replace(0, 0, "x")
	c.MarkStale()

	assert.True(t, c.Stale())
	assert.Empty(t, e.Matches())
	assert.Equal(t, -1, e.Current())
	assert.Equal(t, before, c.PendingClear())

	assert.False(t, c.Repaint(), "repaint is suppressed while stale")
	assert.Equal(t, repaints, c.Repaints())

	d.Replace(1, 1, "y")
	c.MarkStale()
	assert.Equal(t, before, c.PendingClear(), "an empty take keeps the pending set")

	c.Settle()
	assert.False(t, c.Stale())
	assert.Empty(t, c.PendingClear())
	assert.Equal(t, repaints+1, c.Repaints())
	assert.Equal(t, []find.Match{{Start: 6, End: 9}, {Start: 10, End: 13}, {Start: 18, End: 21}}, e.Matches())
	assert.Equal(t, e.Matches(), tagged(d.paint, find.TagHit))
	assert.Equal(t, []find.Match{{Start: 2, End: 5}, {Start: 14, End: 17}}, tagged(d.paint, "kw"))
	assert.Equal(t, 0, e.Current())
	assert.Equal(t, []find.Match{{Start: 6, End: 9}}, tagged(d.paint, find.TagCurrent))
}

func TestCoordinator_SettleDropsVanishedMatches(t *testing.T) {
	d, e, c := setup("foo bar", find.Query{Text: "foo"})
	e.RunSearch()

	d.Replace(0, 3, "baz")
	c.MarkStale()
	c.Settle()

	assert.Empty(t, e.Matches())
	assert.Empty(t, tagged(d.paint, find.TagHit))
	assert.Empty(t, tagged(d.paint, find.TagCurrent))
}

func TestCoordinator_Discard(t *testing.T) {
	d, e, c := setup("foo foo", find.Query{Text: "foo"})
	e.RunSearch()
	c.MarkStale()

	c.Discard()
	assert.False(t, c.Stale())
	assert.Empty(t, c.PendingClear())
	assert.Empty(t, tagged(d.paint, find.TagHit))
}

func TestCoordinator_MarkPairsFollowsCaret(t *testing.T) {
	d, _, c := setup("f(a) [b]", find.Query{})

	c.MarkPairs(1)
	assert.Equal(t, []find.Match{{Start: 1, End: 2}, {Start: 3, End: 4}}, tagged(d.paint, TagBracketMatch))

	c.MarkPairs(5)
	assert.Equal(t, []find.Match{{Start: 5, End: 6}, {Start: 7, End: 8}}, tagged(d.paint, TagBracketMatch))
	assert.Equal(t, pairOf(5, 7, TagBracketMatch), c.Pairs())

	c.MarkPairs(0)
	assert.Empty(t, tagged(d.paint, TagBracketMatch))
	assert.Empty(t, c.Pairs())
}

func TestCoordinator_RepaintKeepsPairs(t *testing.T) {
	d, _, c := setup("let x = (1)", find.Query{})
	c.MarkPairs(8)

	require.True(t, c.Repaint())
	assert.Equal(t, []find.Match{{Start: 8, End: 9}, {Start: 10, End: 11}}, tagged(d.paint, TagBracketMatch))
	assert.Equal(t, []find.Match{{Start: 0, End: 3}}, tagged(d.paint, "kw"))
}

func TestCoordinator_MarkPairsClearsSplicedTags(t *testing.T) {
	d, _, c := setup("f(a)", find.Query{Text: "zzz"})
	c.MarkPairs(1)
	c.MarkStale()

	// the typed rune inherits the tag of the bracket before it
	d.Replace(2, 2, "z")
	require.Equal(t, []find.Match{{Start: 1, End: 3}, {Start: 4, End: 5}}, tagged(d.paint, TagBracketMatch))

	c.MarkPairs(3)
	assert.Equal(t, []find.Match{{Start: 1, End: 2}, {Start: 4, End: 5}}, tagged(d.paint, TagBracketMatch))
	assert.Equal(t, d.Len(), highlight.Coverage(d.paint.Spans()))
}

func TestCoordinator_UnmatchedBracket(t *testing.T) {
	d, _, c := setup("x = (1", find.Query{})
	c.MarkPairs(4)
	assert.Equal(t, []find.Match{{Start: 4, End: 5}}, tagged(d.paint, TagBracketError))
	assert.Empty(t, tagged(d.paint, TagBracketMatch))
}
