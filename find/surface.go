package find

// Tags the engine paints onto a Surface.
const (
	TagHit     = "find-hit"
	TagCurrent = "find-current"
)

// Surface is the editing surface an Engine searches and decorates.
//
// Offsets are rune offsets into Text. AddTag and RemoveTag must clamp their
// range and ignore empty ranges.
type Surface interface {
	Text() string
	// TextVersion changes whenever the text changes.
	TextVersion() uint64

	Caret() int
	// Selection returns the selected range, if any.
	Selection() (start, end int, ok bool)
	// Select selects [start, end) and leaves the caret at end.
	Select(start, end int)

	// ParagraphAt returns the paragraph (line) index containing offset.
	ParagraphAt(offset int) int
	VisibleParagraphs() int
	ShowParagraphAtTop(p int)

	AddTag(start, end int, tag string)
	RemoveTag(start, end int, tag string)

	// Replace substitutes [start, end) with text. Replacing a range with
	// identical text leaves the surface and its TextVersion unchanged.
	Replace(start, end int, text string)
}
