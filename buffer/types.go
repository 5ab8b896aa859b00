package buffer

import "cmp"

// Pos is a 0-based (row, col) position; Col counts runes.
type Pos struct {
	Row int
	Col int
}

// Range is a half-open span [Start, End). Operations that need document
// order normalize it first.
type Range struct {
	Start Pos
	End   Pos
}

// TextEdit replaces the text in Range with Text, which may span lines.
type TextEdit struct {
	Range Range
	Text  string
}

// ComparePos orders positions by row, then column.
func ComparePos(a, b Pos) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

func NormalizeRange(r Range) Range {
	if ComparePos(r.Start, r.End) <= 0 {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

// Contains reports whether p lies in the normalized range.
func (r Range) Contains(p Pos) bool {
	r = NormalizeRange(r)
	return ComparePos(p, r.Start) >= 0 && ComparePos(p, r.End) < 0
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// ClampPos clamps p to an existing row and to a column within that row.
// rowCount is treated as at least 1; lineLen returns a row's rune length.
func ClampPos(p Pos, rowCount int, lineLen func(row int) int) Pos {
	row := clampInt(p.Row, 0, max(rowCount, 1)-1)
	maxCol := 0
	if lineLen != nil {
		maxCol = max(lineLen(row), 0)
	}
	return Pos{Row: row, Col: clampInt(p.Col, 0, maxCol)}
}

func ClampRange(r Range, rowCount int, lineLen func(row int) int) Range {
	return Range{
		Start: ClampPos(r.Start, rowCount, lineLen),
		End:   ClampPos(r.End, rowCount, lineLen),
	}
}
