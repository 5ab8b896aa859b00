package buffer

// Apply applies a sequence of text edits in order. Each edit's range is
// interpreted against the buffer state at the time that edit is applied.
//
// Semantics:
// - Edit ranges are clamped into current document bounds.
// - Empty range + non-empty text inserts.
// - Cursor moves to the end of the last applied (effective) edit.
// - Selection is cleared if any edit applies.
func (b *Buffer) Apply(edits ...TextEdit) {
	b.apply(ChangeSourceLocal, edits)
}

// ApplyProgrammatic is Apply for edits that did not come from the keyboard
// (replace operations, loads). The change record carries
// ChangeSourceProgrammatic.
func (b *Buffer) ApplyProgrammatic(edits ...TextEdit) {
	b.apply(ChangeSourceProgrammatic, edits)
}

func (b *Buffer) apply(source ChangeSource, edits []TextEdit) {
	if len(edits) == 0 {
		return
	}

	change := b.beginChange(source)

	anyChanged := false
	lastCursor := b.cursor

	for _, e := range edits {
		nextCursor, applied, changed := b.replaceRange(e.Range, e.Text)
		if !changed {
			continue
		}
		anyChanged = true
		lastCursor = nextCursor
		change.addAppliedEdit(applied)
	}

	if !anyChanged {
		return
	}

	b.cursor = b.clampPos(lastCursor)
	b.sel = selectionState{}
	b.version++
	b.textVersion++
	b.commitChange(change)
}
