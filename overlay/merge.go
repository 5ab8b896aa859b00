package overlay

import (
	"github.com/iw2rmb/inkwell/find"
	"github.com/iw2rmb/inkwell/highlight"
)

// Decoration is a tag laid over [Start, End), above the syntax tokens.
type Decoration struct {
	Start int
	End   int
	Tag   string
}

// Merge combines gap-filled token spans and decorations into one gap-filled
// span list of the same length.
func Merge(tokens []highlight.Span, decorations []Decoration) []highlight.Span {
	p := &Paint{}
	p.Reset(tokens, highlight.Coverage(tokens))
	for _, d := range decorations {
		p.AddTag(d.Start, d.End, d.Tag)
	}
	return p.spans
}

// MatchDecorations returns the find tags for a MatchSet.
func MatchDecorations(matches []find.Match, current int) []Decoration {
	if len(matches) == 0 {
		return nil
	}
	out := make([]Decoration, 0, len(matches)+1)
	for _, m := range matches {
		out = append(out, Decoration{Start: m.Start, End: m.End, Tag: find.TagHit})
	}
	if current >= 0 && current < len(matches) {
		m := matches[current]
		out = append(out, Decoration{Start: m.Start, End: m.End, Tag: find.TagCurrent})
	}
	return out
}
