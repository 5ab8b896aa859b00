package highlight

import "sort"

// Span is a half-open range [Start, End) carrying a tag set. An empty Tags
// value marks a gap.
type Span struct {
	Start int
	End   int
	Tags  Tags
}

func (s Span) Len() int { return s.End - s.Start }

// Adapt converts tokens into an ordered, gap-filled span list covering
// exactly [0, length).
//
// Tokens are clamped to the buffer. Inverted and empty tokens are skipped,
// and a token overlapping an earlier one is dropped. Token tags are
// normalized into sorted sets.
func Adapt(tokens []Token, length int) []Span {
	if length <= 0 {
		return nil
	}

	toks := make([]Span, 0, len(tokens))
	for _, t := range tokens {
		if t.End < t.Start {
			continue
		}
		start := clampInt(t.Start, 0, length)
		end := clampInt(t.End+1, 0, length)
		if start >= end {
			continue
		}
		toks = append(toks, Span{Start: start, End: end, Tags: NewTags(t.Tags...)})
	}
	sort.SliceStable(toks, func(i, j int) bool { return toks[i].Start < toks[j].Start })

	out := make([]Span, 0, 2*len(toks)+1)
	pos := 0
	for _, t := range toks {
		if t.Start < pos {
			continue
		}
		if t.Start > pos {
			out = appendSpan(out, Span{Start: pos, End: t.Start})
		}
		out = appendSpan(out, t)
		pos = t.End
	}
	if pos < length {
		out = appendSpan(out, Span{Start: pos, End: length})
	}
	return out
}

// Coverage returns the summed length of spans.
func Coverage(spans []Span) int {
	n := 0
	for _, s := range spans {
		n += s.Len()
	}
	return n
}

// appendSpan appends s, joining it with the previous span when both carry
// the same tags and touch.
func appendSpan(out []Span, s Span) []Span {
	if n := len(out); n > 0 {
		last := &out[n-1]
		if last.End == s.Start && last.Tags.Equal(s.Tags) {
			last.End = s.End
			return out
		}
	}
	return append(out, s)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
