package editor

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/config"
	"github.com/iw2rmb/inkwell/findbar"
	"github.com/iw2rmb/inkwell/highlight"
	"github.com/iw2rmb/inkwell/runner"
	"github.com/iw2rmb/inkwell/session"
)

// localTokenizer tags every "local" as a keyword.
var localTokenizer = highlight.TokenizerFunc(func(text string) []highlight.Token {
	var out []highlight.Token
	r := []rune(text)
	for i := 0; i+5 <= len(r); i++ {
		if string(r[i:i+5]) == "local" {
			out = append(out, highlight.Token{Start: i, End: i + 4, Tags: highlight.Tags{highlight.TagKeyword}})
		}
	}
	return out
})

func asciiRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func newTestModel(t *testing.T, text string, opts ...func(*Config)) Model {
	t.Helper()
	settings := config.Default()
	settings.Editor.ShowLineNumbers = false
	sess := session.New(settings, session.WithTokenizer(localTokenizer))
	sess.Load(text)

	cfg := Config{Session: sess, Settings: settings, Renderer: asciiRenderer()}
	for _, o := range opts {
		o(&cfg)
	}
	m := New(cfg)
	return m.SetSize(40, 10)
}

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestUpdate_TypingEditsSession(t *testing.T) {
	m := newTestModel(t, "")
	m = press(m, runes("ab"), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, runes("c"), keyMsg(tea.KeyEnter), runes("d"))

	assert.Equal(t, "ab c\nd", m.Session().GetEditorText())
	assert.True(t, m.Session().IsDirty())
}

func TestUpdate_BlurredIgnoresKeys(t *testing.T) {
	m := newTestModel(t, "x").Blur()
	m = press(m, runes("y"))
	assert.Equal(t, "x", m.Session().GetEditorText())
	assert.False(t, m.Focused())
}

func TestUpdate_TabIndentsInEditor(t *testing.T) {
	m := newTestModel(t, "x")
	m = press(m, keyMsg(tea.KeyTab))
	assert.Equal(t, "\tx", m.Session().GetEditorText())
}

func TestUpdate_DeleteToBoundary(t *testing.T) {
	m := newTestModel(t, "foo bar")
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}, Alt: true})
	assert.Equal(t, " bar", m.Session().GetEditorText())
}

func TestFind_OpenSeedsFromSelection(t *testing.T) {
	m := newTestModel(t, "local a = 1\nlocal b = 2")
	m.Session().Select(0, 5)

	m = press(m, keyMsg(tea.KeyCtrlF))

	require.True(t, m.Session().FindVisible())
	assert.Equal(t, focusFind, m.focus)
	assert.Equal(t, "local", m.findInput.Value())
	assert.Len(t, m.Session().Matches(), 2)
	assert.Contains(t, m.View(), "1/2 matches")
}

func TestFind_TypingInFieldSearches(t *testing.T) {
	m := newTestModel(t, "local a = 1\nlocal b = 2")
	m = press(m, keyMsg(tea.KeyCtrlF))
	assert.Equal(t, "", m.findInput.Value())

	m = press(m, runes("loc"))
	assert.Equal(t, "loc", m.Session().Query().Text)
	assert.Len(t, m.Session().Matches(), 2)
	assert.Equal(t, "local a = 1\nlocal b = 2", m.Session().GetEditorText())

	m = press(m, runes("x"))
	assert.Empty(t, m.Session().Matches())
	assert.Contains(t, m.View(), "0 matches")
}

func TestFind_ShortQueryPrompt(t *testing.T) {
	m := newTestModel(t, "abc")
	m = press(m, keyMsg(tea.KeyCtrlF), runes("a"))
	assert.Contains(t, m.View(), "Enter 3+ chars to search")
}

func TestFind_EnterAndF3Navigate(t *testing.T) {
	m := newTestModel(t, "foo foo foo")
	m = press(m, keyMsg(tea.KeyCtrlF), runes("foo"))
	require.Equal(t, 0, m.Session().CurrentMatch())

	m = press(m, keyMsg(tea.KeyEnter))
	assert.Equal(t, 1, m.Session().CurrentMatch())

	m = press(m, keyMsg(tea.KeyShiftTab))
	require.Equal(t, focusEditor, m.focus)
	m = press(m, keyMsg(tea.KeyF3))
	assert.Equal(t, 2, m.Session().CurrentMatch())

	m = press(m, keyMsg(tea.KeyCtrlP))
	assert.Equal(t, 1, m.Session().CurrentMatch())
	assert.Equal(t, "foo foo foo", m.Session().GetEditorText())
}

func TestFind_OptionToggles(t *testing.T) {
	m := newTestModel(t, "Foo foo")
	m = press(m, keyMsg(tea.KeyCtrlF), runes("foo"))
	require.Len(t, m.Session().Matches(), 2)

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}, Alt: true})
	assert.True(t, m.Session().Query().CaseSensitive)
	assert.Len(t, m.Session().Matches(), 1)
	assert.Equal(t, "foo", m.findInput.Value())

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}, Alt: true})
	assert.True(t, m.Session().Query().WholeWord)
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true})
	assert.True(t, m.Session().Query().UseRegex)
}

func TestFind_EditorEnterInsertsNewlineAndGoesStale(t *testing.T) {
	m := newTestModel(t, "foo bar foo")
	m = press(m, keyMsg(tea.KeyCtrlF), runes("foo"), keyMsg(tea.KeyShiftTab), keyMsg(tea.KeyEnd))
	require.Len(t, m.Session().Matches(), 2)

	var cmd tea.Cmd
	m, cmd = m.Update(runes("x"))
	assert.NotNil(t, cmd)
	assert.True(t, m.Session().Stale())
	assert.Equal(t, "foo bar foox", m.Session().GetEditorText())

	fire, ok := m.Session().PendingTimer()
	require.True(t, ok)
	m = press(m, fire)
	assert.False(t, m.Session().Stale())
	assert.Len(t, m.Session().Matches(), 2)
}

func TestFind_ReplaceAllFromReplaceField(t *testing.T) {
	m := newTestModel(t, "foo bar foo").SetSize(200, 10)
	m = press(m, keyMsg(tea.KeyCtrlH))
	require.Equal(t, findbar.FindAndReplace, m.Session().FindMode())

	m = press(m, runes("foo"), keyMsg(tea.KeyTab))
	require.Equal(t, focusReplace, m.focus)
	m = press(m, runes("baz"))
	assert.Equal(t, "baz", m.Session().Replacement())

	m = press(m, keyMsg(tea.KeyCtrlA))
	assert.Equal(t, "baz bar baz", m.Session().GetEditorText())
	assert.Equal(t, "replaced 2", m.Message())
	assert.Contains(t, m.View(), "replace all")
}

func TestFind_ReplaceOne(t *testing.T) {
	m := newTestModel(t, "foo foo")
	m = press(m, keyMsg(tea.KeyCtrlH), runes("foo"), keyMsg(tea.KeyTab), runes("x"), keyMsg(tea.KeyCtrlR))
	assert.Equal(t, "x foo", m.Session().GetEditorText())
}

func TestFind_EscapeClosesAndReturnsFocus(t *testing.T) {
	m := newTestModel(t, "foo foo")
	m = press(m, keyMsg(tea.KeyCtrlF), runes("foo"), keyMsg(tea.KeyEsc))

	assert.False(t, m.Session().FindVisible())
	assert.Equal(t, focusEditor, m.focus)
	assert.False(t, m.findInput.Focused())
	assert.Empty(t, m.Session().Matches())
	assert.NotContains(t, m.View(), "Find: ")
}

func TestFind_ToggleBetweenModesKeepsQuery(t *testing.T) {
	m := newTestModel(t, "foo foo")
	m = press(m, keyMsg(tea.KeyCtrlH), runes("foo"), keyMsg(tea.KeyTab))
	require.Equal(t, focusReplace, m.focus)

	m = press(m, keyMsg(tea.KeyCtrlF))
	assert.Equal(t, findbar.FindOnly, m.Session().FindMode())
	assert.Equal(t, focusFind, m.focus)
	assert.Equal(t, "foo", m.findInput.Value())
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadText() (string, error) { return c.text, c.err }

func (c *fakeClipboard) WriteText(s string) error {
	c.text = s
	return c.err
}

func TestClipboard_CopyCutPaste(t *testing.T) {
	clip := &fakeClipboard{}
	m := newTestModel(t, "hello world", func(c *Config) { c.Clipboard = clip })
	m.Session().Select(0, 5)

	m = press(m, keyMsg(tea.KeyCtrlC))
	assert.Equal(t, "hello", clip.text)
	assert.Equal(t, "hello world", m.Session().GetEditorText())

	m = press(m, keyMsg(tea.KeyCtrlX))
	assert.Equal(t, " world", m.Session().GetEditorText())

	clip.text = "a\r\nb"
	m = press(m, keyMsg(tea.KeyEnd), keyMsg(tea.KeyCtrlV))
	assert.Equal(t, " worlda\nb", m.Session().GetEditorText())
}

func TestClipboard_ReadErrorReported(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no display")}
	m := newTestModel(t, "x", func(c *Config) { c.Clipboard = clip })
	m = press(m, keyMsg(tea.KeyCtrlV))
	assert.Equal(t, "x", m.Session().GetEditorText())
	assert.Equal(t, "paste failed: no display", m.Message())
}

func TestSave_MarksClean(t *testing.T) {
	var saved string
	m := newTestModel(t, "x", func(c *Config) {
		c.Save = func(text string) error {
			saved = text
			return nil
		}
	})
	m = press(m, runes("y"))
	require.True(t, m.Session().IsDirty())

	m, cmd := m.Update(keyMsg(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	m = press(m, cmd())

	assert.Equal(t, "yx", saved)
	assert.False(t, m.Session().IsDirty())
	assert.Equal(t, "saved", m.Message())
}

func TestSave_EditDuringWriteStaysDirty(t *testing.T) {
	m := newTestModel(t, "x", func(c *Config) {
		c.Save = func(string) error { return nil }
	})
	m = press(m, runes("y"))

	m, cmd := m.Update(keyMsg(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	msg := cmd()
	m = press(m, runes("z"), msg)

	assert.True(t, m.Session().IsDirty())
}

func TestSave_ErrorKeepsDirty(t *testing.T) {
	m := newTestModel(t, "x", func(c *Config) {
		c.Save = func(string) error { return errors.New("disk full") }
	})
	m = press(m, runes("y"))
	m, cmd := m.Update(keyMsg(tea.KeyCtrlS))
	m = press(m, cmd())

	assert.True(t, m.Session().IsDirty())
	assert.Equal(t, "save failed: disk full", m.Message())
}

func TestRun_ShowsScriptOutput(t *testing.T) {
	w := runner.NewWorker(runner.LuaInterpreter{})
	defer w.Close()
	m := newTestModel(t, `print("hi")`, func(c *Config) { c.Runner = w })

	m, cmd := m.Update(keyMsg(tea.KeyCtrlG))
	require.NotNil(t, cmd)
	assert.Equal(t, "running script #1", m.Message())

	m = press(m, cmd())
	assert.Equal(t, "hi\n", m.Output())
	assert.True(t, strings.HasPrefix(m.Message(), "script #1 done in "), m.Message())
	assert.True(t, strings.HasSuffix(m.Message(), ": hi"), m.Message())
}

func TestRun_ScriptError(t *testing.T) {
	w := runner.NewWorker(runner.LuaInterpreter{})
	defer w.Close()
	m := newTestModel(t, `error("boom")`, func(c *Config) { c.Runner = w })

	m, cmd := m.Update(keyMsg(tea.KeyCtrlG))
	m = press(m, cmd())
	assert.True(t, strings.HasPrefix(m.Message(), "script #1 failed: "), m.Message())
}

func TestConfigMsg_AppliesSettings(t *testing.T) {
	m := newTestModel(t, "abc")
	require.False(t, m.ShowLineNumbers())

	cfg := config.Default()
	cfg.Find.MinChars = 1
	m = press(m, ConfigMsg{Config: cfg})
	assert.True(t, m.ShowLineNumbers())
	assert.Equal(t, "config reloaded", m.Message())

	m = press(m, keyMsg(tea.KeyCtrlF), runes("a"))
	assert.Len(t, m.Session().Matches(), 1)

	m = press(m, ConfigMsg{Err: errors.New("bad toml")})
	assert.Equal(t, "config: bad toml", m.Message())
}

func TestLineNumbersToggle(t *testing.T) {
	m := newTestModel(t, "x")
	m = press(m, keyMsg(tea.KeyCtrlL))
	assert.True(t, m.ShowLineNumbers())
	m = press(m, keyMsg(tea.KeyCtrlL))
	assert.False(t, m.ShowLineNumbers())
}

func TestMouse_ClickAndDragSelect(t *testing.T) {
	m := newTestModel(t, "ab\n\tcd")
	m = press(m, tea.MouseMsg{X: 5, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, buffer.Pos{Row: 1, Col: 2}, m.Session().Buffer().Cursor())

	m = press(m,
		tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)
	assert.Equal(t, "ab\n\tc", m.Session().SelectedText())
	assert.Equal(t, buffer.Pos{Row: 0, Col: 0}, m.Session().Buffer().Cursor())
	assert.False(t, m.mouseDragging)
}
