package buffer

import "testing"

func TestBuffer_Apply_AppliesSequentiallyAgainstEvolvingState(t *testing.T) {
	b := New("abc", Options{})

	b.Apply(
		TextEdit{Range: Range{Start: Pos{Col: 0}, End: Pos{Col: 1}}, Text: "XY"},
		TextEdit{Range: Range{Start: Pos{Col: 2}, End: Pos{Col: 3}}, Text: ""},
	)
	if got, want := b.Text(), "XYc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Row: 0, Col: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_Apply_NoOpDoesNotBumpVersion(t *testing.T) {
	b := New("abc", Options{})
	v := b.Version()
	b.Apply(TextEdit{Range: Range{Start: Pos{Col: 1}, End: Pos{Col: 2}}, Text: "b"})
	if b.Version() != v {
		t.Fatalf("version=%d, want %d", b.Version(), v)
	}
	if _, ok := b.LastChange(); ok {
		t.Fatalf("no-op must not record a change")
	}
}

func TestBuffer_ApplyProgrammatic_MarksSource(t *testing.T) {
	b := New("foo bar", Options{})
	b.ApplyProgrammatic(TextEdit{Range: Range{Start: Pos{Col: 4}, End: Pos{Col: 7}}, Text: "baz"})

	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected change")
	}
	if ch.Source != ChangeSourceProgrammatic {
		t.Fatalf("source=%v, want programmatic", ch.Source)
	}
}
