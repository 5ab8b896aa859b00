package buffer

// OffsetFromPos converts pos to a rune offset into Text(). pos is clamped
// into document bounds first.
func (b *Buffer) OffsetFromPos(pos Pos) int {
	pos = b.clampPos(pos)
	off := 0
	for row := 0; row < pos.Row; row++ {
		off += len(b.lines[row]) + 1
	}
	return off + pos.Col
}

// PosFromOffset converts a rune offset into a document position. Offsets
// outside [0, Len()] are clamped.
func (b *Buffer) PosFromOffset(off int) Pos {
	if off <= 0 {
		return Pos{}
	}
	for row, line := range b.lines {
		if off <= len(line) {
			return Pos{Row: row, Col: off}
		}
		off -= len(line) + 1
	}
	lastRow := len(b.lines) - 1
	return Pos{Row: lastRow, Col: len(b.lines[lastRow])}
}

// RangeFromOffsets converts the half-open offset interval [start, end) to a
// document range.
func (b *Buffer) RangeFromOffsets(start, end int) Range {
	return NormalizeRange(Range{Start: b.PosFromOffset(start), End: b.PosFromOffset(end)})
}
