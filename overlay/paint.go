// Package overlay keeps the style overlay of a buffer: one gap-filled list of
// tagged spans that syntax tokens and find matches are painted into.
package overlay

import "github.com/iw2rmb/inkwell/highlight"

// Paint is an ordered list of spans covering [0, Len()) without gaps or
// overlap.
type Paint struct {
	spans  []highlight.Span
	length int
}

// NewPaint returns an untagged paint of length runes.
func NewPaint(length int) *Paint {
	p := &Paint{}
	p.Reset(nil, length)
	return p
}

// Reset replaces the paint with spans, which must cover [0, length). Gaps
// are filled and out-of-range spans dropped, as highlight.Adapt does.
func (p *Paint) Reset(spans []highlight.Span, length int) {
	if length < 0 {
		length = 0
	}
	p.length = length
	p.spans = p.spans[:0]
	pos := 0
	for _, s := range spans {
		start := max(s.Start, pos)
		end := min(s.End, length)
		if start >= end {
			continue
		}
		if start > pos {
			p.spans = appendSpan(p.spans, highlight.Span{Start: pos, End: start})
		}
		p.spans = appendSpan(p.spans, highlight.Span{Start: start, End: end, Tags: s.Tags})
		pos = end
	}
	if pos < length {
		p.spans = appendSpan(p.spans, highlight.Span{Start: pos, End: length})
	}
}

func (p *Paint) Len() int { return p.length }

// Spans returns a copy of the spans.
func (p *Paint) Spans() []highlight.Span {
	return append([]highlight.Span(nil), p.spans...)
}

// Range returns the spans intersecting [start, end), cut to that range.
func (p *Paint) Range(start, end int) []highlight.Span {
	start, end = max(start, 0), min(end, p.length)
	var out []highlight.Span
	for _, s := range p.spans {
		if s.End <= start {
			continue
		}
		if s.Start >= end {
			break
		}
		out = append(out, highlight.Span{Start: max(s.Start, start), End: min(s.End, end), Tags: s.Tags})
	}
	return out
}

// TagsAt returns the tags of the rune at offset.
func (p *Paint) TagsAt(offset int) highlight.Tags {
	for _, s := range p.spans {
		if offset >= s.Start && offset < s.End {
			return s.Tags
		}
	}
	return nil
}

// AddTag adds tag to [start, end). The range is clamped; empty ranges are
// ignored.
func (p *Paint) AddTag(start, end int, tag string) {
	p.update(start, end, func(t highlight.Tags) highlight.Tags { return t.With(tag) })
}

// RemoveTag removes tag from [start, end). The range is clamped; empty
// ranges are ignored.
func (p *Paint) RemoveTag(start, end int, tag string) {
	p.update(start, end, func(t highlight.Tags) highlight.Tags { return t.Without(tag) })
}

// Strip removes tag wherever it is painted.
func (p *Paint) Strip(tag string) {
	out := make([]highlight.Span, 0, len(p.spans))
	for _, s := range p.spans {
		s.Tags = s.Tags.Without(tag)
		out = appendSpan(out, s)
	}
	p.spans = out
}

func (p *Paint) update(start, end int, f func(highlight.Tags) highlight.Tags) {
	start, end = max(start, 0), min(end, p.length)
	if start >= end {
		return
	}

	out := make([]highlight.Span, 0, len(p.spans)+2)
	for _, s := range p.spans {
		if s.End <= start || s.Start >= end {
			out = appendSpan(out, s)
			continue
		}
		if s.Start < start {
			out = appendSpan(out, highlight.Span{Start: s.Start, End: start, Tags: s.Tags})
		}
		out = appendSpan(out, highlight.Span{Start: max(s.Start, start), End: min(s.End, end), Tags: f(s.Tags)})
		if s.End > end {
			out = appendSpan(out, highlight.Span{Start: end, End: s.End, Tags: s.Tags})
		}
	}
	p.spans = out
}

// Splice follows a text edit that replaced deleted runes at start with
// inserted runes. Inserted runes take the tags of the rune before start.
func (p *Paint) Splice(start, deleted, inserted int) {
	start = min(max(start, 0), p.length)
	deleted = min(max(deleted, 0), p.length-start)
	inserted = max(inserted, 0)

	if deleted > 0 {
		p.cut(start, start+deleted)
	}
	if inserted > 0 {
		var tags highlight.Tags
		if start > 0 {
			tags = p.TagsAt(start - 1)
		}
		p.insert(highlight.Span{Start: start, End: start + inserted, Tags: tags})
	}
}

func (p *Paint) cut(start, end int) {
	n := end - start
	out := make([]highlight.Span, 0, len(p.spans))
	for _, s := range p.spans {
		switch {
		case s.End <= start:
			out = appendSpan(out, s)
		case s.Start >= end:
			out = appendSpan(out, highlight.Span{Start: s.Start - n, End: s.End - n, Tags: s.Tags})
		default:
			keep := max(start-s.Start, 0) + max(s.End-end, 0)
			if keep == 0 {
				continue
			}
			from := min(s.Start, start)
			out = appendSpan(out, highlight.Span{Start: from, End: from + keep, Tags: s.Tags})
		}
	}
	p.spans = out
	p.length -= n
}

func (p *Paint) insert(ins highlight.Span) {
	n := ins.Len()
	at := ins.Start
	out := make([]highlight.Span, 0, len(p.spans)+2)
	placed := false
	for _, s := range p.spans {
		switch {
		case s.End <= at:
			out = appendSpan(out, s)
		case s.Start >= at:
			if !placed {
				out = appendSpan(out, ins)
				placed = true
			}
			out = appendSpan(out, highlight.Span{Start: s.Start + n, End: s.End + n, Tags: s.Tags})
		default:
			out = appendSpan(out, highlight.Span{Start: s.Start, End: at, Tags: s.Tags})
			out = appendSpan(out, ins)
			placed = true
			out = appendSpan(out, highlight.Span{Start: at + n, End: s.End + n, Tags: s.Tags})
		}
	}
	if !placed {
		out = appendSpan(out, ins)
	}
	p.spans = out
	p.length += n
}

func appendSpan(out []highlight.Span, s highlight.Span) []highlight.Span {
	if s.Start >= s.End {
		return out
	}
	if n := len(out); n > 0 {
		last := &out[n-1]
		if last.End == s.Start && last.Tags.Equal(s.Tags) {
			last.End = s.End
			return out
		}
	}
	return append(out, s)
}
