package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor key bindings.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	WordLeft, WordRight                       key.Binding
	Home, End                                 key.Binding
	DocStart, DocEnd                          key.Binding

	Backspace, Delete key.Binding
	Enter, Tab        key.Binding
	DeleteToBoundary  key.Binding

	Copy, Cut, Paste key.Binding

	Find, FindReplace, Close        key.Binding
	Next, Prev                      key.Binding
	CaseSensitive, WholeWord, Regex key.Binding
	ReplaceOne, ReplaceAll          key.Binding
	NextField, FocusEditor          key.Binding

	LineNumbers, Save, Run key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),

		// Portable word movement: terminals vary between alt+arrows and ctrl+arrows.
		WordLeft:  key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt/ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt/ctrl+→", "word right")),

		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "line start")),
		End:      key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),
		DocStart: key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "doc start")),
		DocEnd:   key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "doc end")),

		Backspace:        key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete left")),
		Delete:           key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:            key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),
		Tab:              key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
		DeleteToBoundary: key.NewBinding(key.WithKeys("ctrl+delete", "alt+d"), key.WithHelp("alt+d", "delete word")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		Find:        key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find")),
		FindReplace: key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "replace")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Next:        key.NewBinding(key.WithKeys("enter", "f3"), key.WithHelp("enter", "next")),
		Prev:        key.NewBinding(key.WithKeys("shift+f3", "ctrl+p"), key.WithHelp("ctrl+p", "prev")),

		CaseSensitive: key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "case")),
		WholeWord:     key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "word")),
		Regex:         key.NewBinding(key.WithKeys("alt+x"), key.WithHelp("alt+x", "regex")),

		ReplaceOne: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "replace")),
		ReplaceAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "replace all")),

		NextField:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		FocusEditor: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "switch focus")),

		LineNumbers: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "line numbers")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Run:         key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "run")),
	}
}

// helpKeys adapts a KeyMap to help.KeyMap for the current context.
type helpKeys struct {
	km      KeyMap
	find    bool
	replace bool
}

func (h helpKeys) ShortHelp() []key.Binding {
	km := h.km
	switch {
	case h.replace:
		return []key.Binding{km.Next, km.Prev, km.ReplaceOne, km.ReplaceAll, km.NextField, km.Close}
	case h.find:
		return []key.Binding{km.Next, km.Prev, km.CaseSensitive, km.WholeWord, km.Regex, km.FocusEditor, km.Close}
	}
	return []key.Binding{km.Find, km.FindReplace, km.Save, km.Run, km.LineNumbers}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	km := h.km
	return [][]key.Binding{
		{km.Find, km.FindReplace, km.Next, km.Prev, km.Close},
		{km.CaseSensitive, km.WholeWord, km.Regex, km.ReplaceOne, km.ReplaceAll},
		{km.Tab, km.DeleteToBoundary, km.Copy, km.Cut, km.Paste},
		{km.LineNumbers, km.Save, km.Run},
	}
}
