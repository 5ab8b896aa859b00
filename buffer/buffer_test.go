package buffer

import "testing"

func TestBuffer_SetCursor_ClampsAndVersions(t *testing.T) {
	b := New("a\nbc", Options{})
	if b.Version() != 0 || b.TextVersion() != 0 {
		t.Fatalf("expected zero versions, got %d/%d", b.Version(), b.TextVersion())
	}

	b.SetCursor(Pos{Row: 999, Col: 999})
	if got := b.Cursor(); got != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("cursor=%v, want (1,2)", got)
	}
	if b.Version() != 1 {
		t.Fatalf("expected version 1, got %d", b.Version())
	}
	if b.TextVersion() != 0 {
		t.Fatalf("expected text version unchanged, got %d", b.TextVersion())
	}

	b.SetCursor(Pos{Row: 1, Col: 2})
	if b.Version() != 1 {
		t.Fatalf("expected version unchanged, got %d", b.Version())
	}
}

func TestBuffer_SetSelection_NormalizesAndMovesCursor(t *testing.T) {
	b := New("a\nbc", Options{})

	b.SetSelection(Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 1, Col: 99}})
	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected selection active")
	}
	want := Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 1, Col: 2}}
	if r != want {
		t.Fatalf("selection=%v, want %v", r, want)
	}
	if got := b.Cursor(); got != want.End {
		t.Fatalf("cursor=%v, want %v", got, want.End)
	}

	v := b.Version()
	b.SetSelection(want)
	if b.Version() != v {
		t.Fatalf("expected version unchanged for same selection, got %d", b.Version())
	}

	b.ClearSelection()
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
}

func TestBuffer_LenAndLines(t *testing.T) {
	b := New("héllo\n\nwörld", Options{})
	if got, want := b.Len(), 12; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	if got, want := b.LineCount(), 3; got != want {
		t.Fatalf("line count=%d, want %d", got, want)
	}
	if got, want := b.Line(2), "wörld"; got != want {
		t.Fatalf("line 2=%q, want %q", got, want)
	}
	if got := b.Line(7); got != "" {
		t.Fatalf("out of range line=%q, want empty", got)
	}
}

func TestBuffer_SetText_ResetsCursorAndRecordsChange(t *testing.T) {
	b := New("abc", Options{})
	b.SetCursor(Pos{Row: 0, Col: 3})

	b.SetText("xy\nz")
	if got, want := b.Text(), "xy\nz"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("cursor=%v, want origin", got)
	}
	ch, ok := b.LastChange()
	if !ok || len(ch.AppliedEdits) != 1 {
		t.Fatalf("expected one applied edit, got %#v", ch)
	}
	e := ch.AppliedEdits[0]
	if e.StartOffset != 0 || e.DeletedRunes != 3 || e.InsertedRunes != 4 {
		t.Fatalf("unexpected offsets: %+v", e)
	}
}
