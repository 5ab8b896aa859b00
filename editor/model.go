package editor

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/config"
	"github.com/iw2rmb/inkwell/findbar"
	"github.com/iw2rmb/inkwell/session"
)

type focusArea uint8

const (
	focusEditor focusArea = iota
	focusFind
	focusReplace
)

// Model is a Bubble Tea component that renders and interacts with a session.
type Model struct {
	cfg    Config
	sess   *session.Session
	keyMap KeyMap
	style  Style
	theme  Theme

	focused bool
	focus   focusArea

	width, height int
	showLineNums  bool
	tabWidth      int

	viewport     viewport.Model
	findInput    textinput.Model
	replaceInput textinput.Model
	help         help.Model

	mouseAnchor   buffer.Pos
	mouseDragging bool

	message string
	output  string
}

func New(cfg Config) Model {
	if cfg.Session == nil {
		cfg.Session = session.New(cfg.Settings)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = lipgloss.DefaultRenderer()
	}
	km := cfg.KeyMap
	if len(km.Left.Keys()) == 0 {
		km = DefaultKeyMap()
	}
	st := NewStyle(cfg.Renderer)
	if cfg.Style != nil {
		st = *cfg.Style
	}

	m := Model{
		cfg:          cfg,
		sess:         cfg.Session,
		keyMap:       km,
		style:        st,
		focused:      true,
		viewport:     viewport.New(0, 0),
		findInput:    newInput("Find: "),
		replaceInput: newInput("Replace: "),
		help:         help.New(),
	}
	m.applySettings(cfg.Settings)
	m.rebuildContent()
	return m
}

func newInput(prompt string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Width = 24
	return ti
}

func (m *Model) applySettings(s config.Config) {
	m.cfg.Settings = s
	m.showLineNums = s.Editor.ShowLineNumbers
	m.tabWidth = s.Editor.TabWidth
	if m.tabWidth <= 0 {
		m.tabWidth = 4
	}
	m.theme = NewTheme(m.cfg.Renderer, m.style.Text, s.Theme)
}

// Session returns the document being edited.
func (m Model) Session() *session.Session { return m.sess }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width, m.height = width, height
	m.help.Width = width
	m.findInput.Width = max(width/3, 8)
	m.replaceInput.Width = m.findInput.Width
	m.layout()
	m.rebuildContent()
	return m
}

func (m Model) Focus() Model {
	m.focused = true
	m.rebuildContent()
	return m
}

func (m Model) Blur() Model {
	m.focused = false
	m.rebuildContent()
	return m
}

func (m Model) Focused() bool { return m.focused }

// ShowLineNumbers reports whether the gutter is visible.
func (m Model) ShowLineNumbers() bool { return m.showLineNums }

// Message is the last save or script notice shown in the status line.
func (m Model) Message() string { return m.message }

// Output is the output of the last script run.
func (m Model) Output() string { return m.output }

// ApplyConfig applies a reloaded configuration.
func (m Model) ApplyConfig(cfg config.Config) Model {
	m.sess.ApplyConfig(cfg)
	m.applySettings(cfg)
	m.rebuildContent()
	return m
}

// chromeHeight is the number of rows below the text area: find bar rows,
// the status line and the help line.
func (m Model) chromeHeight() int {
	h := 2
	switch m.sess.FindMode() {
	case findbar.FindOnly:
		h++
	case findbar.FindAndReplace:
		h += 2
	}
	return h
}

// layout sizes the text area and tells the session how many paragraphs fit.
func (m *Model) layout() {
	h := max(m.height-m.chromeHeight(), 1)
	m.viewport.Width = m.width
	m.viewport.Height = h
	if m.sess.ViewHeight() != h {
		m.sess.SetViewHeight(h)
	}
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
	m.viewport.SetYOffset(m.sess.ScrollTop())
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.findInput.Blur()
	m.replaceInput.Blur()
	switch f {
	case focusFind:
		m.findInput.Focus()
	case focusReplace:
		m.replaceInput.Focus()
	}
}

// syncBar moves focus and field contents after a find bar transition.
func (m *Model) syncBar(prev findbar.Mode) {
	mode := m.sess.FindMode()
	switch {
	case mode == findbar.Hidden:
		m.setFocus(focusEditor)
	case prev == findbar.Hidden:
		m.findInput.SetValue(m.sess.Query().Text)
		m.findInput.CursorEnd()
		m.setFocus(focusFind)
	case mode == findbar.FindOnly && m.focus == focusReplace:
		m.setFocus(focusFind)
	}
	if mode == findbar.FindAndReplace {
		m.replaceInput.SetValue(m.sess.Replacement())
	}
	m.layout()
}
