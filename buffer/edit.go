package buffer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// InsertText inserts text at the cursor, or replaces the active selection.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		if _, ok := b.Selection(); ok {
			b.DeleteSelection()
		}
		return
	}

	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.editRange(r, s)
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// InsertNewlineIndent inserts a line break followed by the leading whitespace
// of the cursor's line (up to the cursor column).
func (b *Buffer) InsertNewlineIndent() {
	line := b.lines[b.cursor.Row]
	n := 0
	for n < len(line) && n < b.cursor.Col && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	b.InsertText("\n" + string(line[:n]))
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	if row == 0 && col == 0 {
		return
	}

	if col > 0 {
		b.editRange(Range{Start: Pos{Row: row, Col: col - 1}, End: Pos{Row: row, Col: col}}, "")
		return
	}

	// Join with previous line (delete the newline).
	prevRow := row - 1
	b.editRange(Range{Start: Pos{Row: prevRow, Col: len(b.lines[prevRow])}, End: Pos{Row: row, Col: 0}}, "")
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	lastRow := len(b.lines) - 1
	if row == lastRow && col == len(b.lines[lastRow]) {
		return
	}

	if col < len(b.lines[row]) {
		b.editRange(Range{Start: Pos{Row: row, Col: col}, End: Pos{Row: row, Col: col + 1}}, "")
		return
	}

	// Join with next line (delete the newline).
	b.editRange(Range{Start: Pos{Row: row, Col: col}, End: Pos{Row: row + 1, Col: 0}}, "")
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	b.editRange(r, "")
}

// DeleteToBoundary deletes forward from the cursor up to the next boundary:
// a run of whitespace when the cursor sits on whitespace, otherwise a run of
// word runes (letters, digits, '_'). Punctuation under the cursor deletes
// nothing.
func (b *Buffer) DeleteToBoundary() {
	start := b.OffsetFromPos(b.cursor)
	runes := []rune(b.Text())
	if start >= len(runes) {
		return
	}

	end := start
	if unicode.IsSpace(runes[start]) {
		for end < len(runes) && unicode.IsSpace(runes[end]) {
			end++
		}
	} else {
		for end < len(runes) && isWordRune(runes[end]) {
			end++
		}
	}
	if end == start {
		return
	}
	b.editRange(Range{Start: b.cursor, End: b.PosFromOffset(end)}, "")
}

// IndentSelection prefixes every line covered by a multi-line selection with
// the configured indent, including empty lines, and reselects the indented
// block. A selection ending at column 0 does not cover that last line.
//
// It reports false (and changes nothing) when there is no selection or the
// selection covers a single line.
func (b *Buffer) IndentSelection() bool {
	r, ok := b.Selection()
	if !ok {
		return false
	}

	startRow, endRow := r.Start.Row, r.End.Row
	if r.End.Col == 0 && endRow > startRow {
		endRow--
	}
	if startRow == endRow {
		return false
	}

	parts := make([]string, 0, endRow-startRow+1)
	for row := startRow; row <= endRow; row++ {
		parts = append(parts, b.opt.Indent+string(b.lines[row]))
	}

	change := b.beginChange(ChangeSourceLocal)
	block := Range{Start: Pos{Row: startRow}, End: Pos{Row: endRow, Col: len(b.lines[endRow])}}
	nextCursor, applied, changed := b.replaceRange(block, strings.Join(parts, "\n"))
	if !changed {
		return false
	}

	b.cursor = nextCursor
	b.sel = selectionState{active: true, anchor: Pos{Row: startRow}, end: nextCursor}
	b.version++
	b.textVersion++
	change.addAppliedEdit(applied)
	b.commitChange(change)
	return true
}

func (b *Buffer) editRange(r Range, text string) {
	change := b.beginChange(ChangeSourceLocal)
	nextCursor, applied, changed := b.replaceRange(r, text)
	if !changed {
		return
	}
	b.cursor = nextCursor
	b.sel = selectionState{}
	b.version++
	b.textVersion++
	change.addAppliedEdit(applied)
	b.commitChange(change)
}

func (b *Buffer) replaceRange(r Range, text string) (nextCursor Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	if r.IsEmpty() && text == "" {
		return b.cursor, AppliedEdit{}, false
	}

	startRow, startCol := r.Start.Row, r.Start.Col
	endRow, endCol := r.End.Row, r.End.Col
	deletedText := textForLinesRange(b.lines, r)
	if deletedText == text {
		return b.cursor, AppliedEdit{}, false
	}
	startOffset := b.OffsetFromPos(r.Start)

	prefix := append([]rune(nil), b.lines[startRow][:startCol]...)
	suffix := append([]rune(nil), b.lines[endRow][endCol:]...)

	parts := strings.Split(text, "\n")
	ins := make([][]rune, 0, len(parts))
	for _, p := range parts {
		ins = append(ins, []rune(p))
	}

	repl := make([][]rune, 0, len(ins))
	if len(ins) == 1 {
		line := make([]rune, 0, len(prefix)+len(ins[0])+len(suffix))
		line = append(line, prefix...)
		line = append(line, ins[0]...)
		line = append(line, suffix...)
		repl = append(repl, line)
		nextCursor = Pos{Row: startRow, Col: len(prefix) + len(ins[0])}
	} else {
		first := make([]rune, 0, len(prefix)+len(ins[0]))
		first = append(first, prefix...)
		first = append(first, ins[0]...)
		repl = append(repl, first)

		for i := 1; i < len(ins)-1; i++ {
			repl = append(repl, ins[i])
		}

		lastPart := ins[len(ins)-1]
		last := make([]rune, 0, len(lastPart)+len(suffix))
		last = append(last, lastPart...)
		last = append(last, suffix...)
		repl = append(repl, last)

		nextCursor = Pos{Row: startRow + len(ins) - 1, Col: len(lastPart)}
	}

	before := b.lines[:startRow]
	after := b.lines[endRow+1:]
	out := make([][]rune, 0, len(before)+len(repl)+len(after))
	out = append(out, before...)
	out = append(out, repl...)
	out = append(out, after...)
	if len(out) == 0 {
		out = [][]rune{nil}
	}

	b.lines = out
	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter: Range{
			Start: r.Start,
			End:   nextCursor,
		},
		InsertText:    text,
		DeletedText:   deletedText,
		StartOffset:   startOffset,
		DeletedRunes:  utf8.RuneCountInString(deletedText),
		InsertedRunes: utf8.RuneCountInString(text),
	}
	return nextCursor, applied, true
}

func textForLinesRange(lines [][]rune, r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}

	startRow, startCol := r.Start.Row, r.Start.Col
	endRow, endCol := r.End.Row, r.End.Col

	if startRow == endRow {
		return string(lines[startRow][startCol:endCol])
	}

	var sb strings.Builder
	for row := startRow; row <= endRow; row++ {
		if row > startRow {
			sb.WriteByte('\n')
		}
		partStart := 0
		partEnd := len(lines[row])
		if row == startRow {
			partStart = startCol
		}
		if row == endRow {
			partEnd = endCol
		}
		sb.WriteString(string(lines[row][partStart:partEnd]))
	}
	return sb.String()
}

// TextInRange returns the document text covered by r.
func (b *Buffer) TextInRange(r Range) string {
	return textForLinesRange(b.lines, ClampRange(r, len(b.lines), b.lineLen))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
