package find

import "strings"

// fakeSurface is an in-memory Surface recording per-rune tags.
type fakeSurface struct {
	text    []rune
	version uint64

	caret  int
	sel    [2]int
	hasSel bool

	visible int
	top     int

	tags map[string][]bool
}

func newFakeSurface(text string) *fakeSurface {
	return &fakeSurface{text: []rune(text), visible: 10, tags: map[string][]bool{}}
}

func (f *fakeSurface) Text() string        { return string(f.text) }
func (f *fakeSurface) TextVersion() uint64 { return f.version }
func (f *fakeSurface) Caret() int          { return f.caret }

func (f *fakeSurface) Selection() (int, int, bool) {
	return f.sel[0], f.sel[1], f.hasSel
}

func (f *fakeSurface) Select(start, end int) {
	f.sel = [2]int{start, end}
	f.hasSel = start != end
	f.caret = end
}

func (f *fakeSurface) ParagraphAt(offset int) int {
	if offset > len(f.text) {
		offset = len(f.text)
	}
	return strings.Count(string(f.text[:offset]), "\n")
}

func (f *fakeSurface) VisibleParagraphs() int  { return f.visible }
func (f *fakeSurface) ShowParagraphAtTop(p int) { f.top = p }

func (f *fakeSurface) mark(start, end int, tag string, on bool) {
	cov := f.tags[tag]
	if len(cov) != len(f.text) {
		cov = append(cov, make([]bool, len(f.text)-len(cov))...)
		f.tags[tag] = cov
	}
	if start < 0 {
		start = 0
	}
	if end > len(f.text) {
		end = len(f.text)
	}
	for i := start; i < end; i++ {
		cov[i] = on
	}
}

func (f *fakeSurface) AddTag(start, end int, tag string)    { f.mark(start, end, tag, true) }
func (f *fakeSurface) RemoveTag(start, end int, tag string) { f.mark(start, end, tag, false) }

func (f *fakeSurface) Replace(start, end int, text string) {
	if string(f.text[start:end]) == text {
		return
	}
	ins := []rune(text)
	out := make([]rune, 0, len(f.text)-(end-start)+len(ins))
	out = append(out, f.text[:start]...)
	out = append(out, ins...)
	out = append(out, f.text[end:]...)
	f.text = out
	for tag, cov := range f.tags {
		next := make([]bool, 0, len(out))
		next = append(next, cov[:start]...)
		next = append(next, make([]bool, len(ins))...)
		next = append(next, cov[end:]...)
		f.tags[tag] = next
	}
	f.version++
	f.caret = start + len(ins)
	f.hasSel = false
}

// edit mutates the text as a user keystroke would.
func (f *fakeSurface) edit(start, end int, text string) {
	f.Replace(start, end, text)
}

// tagged returns the maximal runs carrying tag.
func (f *fakeSurface) tagged(tag string) []Match {
	var out []Match
	cov := f.tags[tag]
	for i := 0; i < len(cov); i++ {
		if !cov[i] {
			continue
		}
		j := i
		for j < len(cov) && cov[j] {
			j++
		}
		out = append(out, Match{Start: i, End: j})
		i = j
	}
	return out
}
