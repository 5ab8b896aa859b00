package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/config"
	"github.com/iw2rmb/inkwell/runner"
	"github.com/iw2rmb/inkwell/session"
)

// Config configures the editor Model.
type Config struct {
	// Session is the document being edited. Required.
	Session *session.Session

	// Settings supplies tab width, line numbers, language and theme.
	Settings config.Config

	// KeyMap defaults to DefaultKeyMap when it has no bindings.
	KeyMap KeyMap

	// Style defaults to NewStyle(Renderer).
	Style *Style

	// Renderer builds theme styles. Nil uses lipgloss.DefaultRenderer().
	Renderer *lipgloss.Renderer

	// Clipboard backs copy, cut and paste. Nil disables them.
	Clipboard Clipboard

	// Runner executes the document. Nil disables running scripts.
	Runner *runner.Worker

	// Save persists the document text. Nil disables saving.
	Save func(text string) error
}
