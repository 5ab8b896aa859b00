// Package findbar holds the find bar state machine.
//
// The bar is Hidden, FindOnly or FindAndReplace. ToggleFind and
// ToggleReplace close the bar when its current mode is requested again and
// switch modes otherwise. Escape always closes.
package findbar

type Mode uint8

const (
	Hidden Mode = iota
	FindOnly
	FindAndReplace
)

func (m Mode) String() string {
	switch m {
	case FindOnly:
		return "find"
	case FindAndReplace:
		return "find+replace"
	default:
		return "hidden"
	}
}

// Transition is the outcome of an event.
type Transition struct {
	From, To Mode
}

// Opened reports whether the bar went from hidden to visible.
func (t Transition) Opened() bool { return t.From == Hidden && t.To != Hidden }

// Closed reports whether the bar went from visible to hidden.
func (t Transition) Closed() bool { return t.From != Hidden && t.To == Hidden }

func (t Transition) Changed() bool { return t.From != t.To }

// Bar is the find bar state. The zero value is Hidden.
type Bar struct {
	mode Mode
}

func (b *Bar) Mode() Mode { return b.mode }

func (b *Bar) Visible() bool { return b.mode != Hidden }

// ReplaceEnabled reports whether the replace field is active.
func (b *Bar) ReplaceEnabled() bool { return b.mode == FindAndReplace }

// ToggleFind handles the toggle-find shortcut.
func (b *Bar) ToggleFind() Transition {
	if b.mode == FindOnly {
		return b.set(Hidden)
	}
	return b.set(FindOnly)
}

// ToggleReplace handles the toggle-find-and-replace shortcut.
func (b *Bar) ToggleReplace() Transition {
	if b.mode == FindAndReplace {
		return b.set(Hidden)
	}
	return b.set(FindAndReplace)
}

// Escape closes the bar.
func (b *Bar) Escape() Transition { return b.set(Hidden) }

func (b *Bar) set(m Mode) Transition {
	t := Transition{From: b.mode, To: m}
	b.mode = m
	return t
}
