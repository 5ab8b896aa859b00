package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/inkwell/findbar"
	"github.com/iw2rmb/inkwell/highlight"
	"github.com/iw2rmb/inkwell/internal/grapheme"
)

func (m Model) View() string {
	parts := []string{m.viewport.View()}
	if bar := m.findBarView(); bar != "" {
		parts = append(parts, bar)
	}
	parts = append(parts, m.statusView(), m.help.View(helpKeys{
		km:      m.keyMap,
		find:    m.sess.FindVisible(),
		replace: m.sess.FindMode() == findbar.FindAndReplace,
	}))
	return strings.Join(parts, "\n")
}

// lineCtx is the per-render state shared by every line.
type lineCtx struct {
	selStart, selEnd int
	caret            int
	cursor           bool
	// width is the number of text cells available; 0 means unlimited.
	width            int
}

// segKey identifies a run of runes that render with one style.
type segKey struct {
	span   int
	sel    bool
	cursor bool
}

func (m Model) renderContent() string {
	buf := m.sess.Buffer()
	paint := m.sess.Paint()
	n := buf.LineCount()
	digits := gutterDigits(n)
	cur := buf.Cursor()

	c := lineCtx{
		selStart: -1,
		selEnd:   -1,
		caret:    buf.OffsetFromPos(cur),
		cursor:   m.focused && m.focus == focusEditor,
	}
	if r, ok := buf.Selection(); ok {
		c.selStart, c.selEnd = buf.OffsetFromPos(r.Start), buf.OffsetFromPos(r.End)
	}
	if m.viewport.Width > 0 {
		c.width = max(m.viewport.Width-m.gutterWidth(), 1)
	}

	var sb strings.Builder
	start := 0
	for row := 0; row < n; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		line := []rune(buf.Line(row))
		if m.showLineNums {
			sb.WriteString(m.renderGutter(row, digits, row == cur.Row))
		}
		sb.WriteString(m.renderLine(line, start, paint.Range(start, start+len(line)), c))
		start += len(line) + 1
	}
	return sb.String()
}

// renderLine styles one paragraph. Tabs expand to the next tab stop and the
// line is cut at the available width.
func (m Model) renderLine(line []rune, start int, spans []highlight.Span, c lineCtx) string {
	var (
		sb, seg strings.Builder
		st      lipgloss.Style
		key     segKey
		open    bool
		x, si   int
	)
	flush := func() {
		if seg.Len() > 0 {
			sb.WriteString(st.Render(seg.String()))
			seg.Reset()
		}
	}

	for i, r := range line {
		off := start + i
		for si < len(spans) && spans[si].End <= off {
			si++
		}
		var tags highlight.Tags
		span := -1
		if si < len(spans) && spans[si].Start <= off {
			tags, span = spans[si].Tags, si
		}

		text, w := string(r), runewidth.RuneWidth(r)
		if r == '\t' {
			w = m.tabWidth - x%m.tabWidth
			text = strings.Repeat(" ", w)
		}
		if c.width > 0 && x+w > c.width {
			break
		}

		k := segKey{
			span:   span,
			sel:    off >= c.selStart && off < c.selEnd,
			cursor: c.cursor && off == c.caret,
		}
		if !open || k != key {
			flush()
			st, key, open = m.segmentStyle(tags, k), k, true
		}
		seg.WriteString(text)
		x += w
	}
	flush()

	if c.cursor && c.caret == start+len(line) && (c.width == 0 || x < c.width) {
		sb.WriteString(m.style.Cursor.Inherit(m.style.Text).Render(" "))
	}
	return sb.String()
}

func (m Model) segmentStyle(tags highlight.Tags, k segKey) lipgloss.Style {
	st := m.theme.Style(tags)
	if k.sel {
		st = m.style.Selection.Inherit(st)
	}
	if k.cursor {
		st = m.style.Cursor.Inherit(st)
	}
	return st
}

func (m Model) findBarView() string {
	mode := m.sess.FindMode()
	if mode == findbar.Hidden {
		return ""
	}
	q := m.sess.Query()
	line := m.findInput.View() + "  " + strings.Join([]string{
		m.option("Aa", q.CaseSensitive),
		m.option("W", q.WholeWord),
		m.option(".*", q.UseRegex),
	}, " ")
	if s := m.sess.Status().Matches; s != "" {
		line += "  " + m.style.Message.Render(s)
	}
	if mode == findbar.FindAndReplace {
		line += "\n" + m.replaceInput.View()
	}
	return line
}

func (m Model) option(label string, on bool) string {
	if on {
		return m.style.OptionOn.Render("[" + label + "]")
	}
	return m.style.Option.Render("[" + label + "]")
}

// statusView shows the caret as (col,row) with a grapheme column, the dirty
// marker, the language and the last message.
func (m Model) statusView() string {
	st := m.sess.Status()
	buf := m.sess.Buffer()
	cur := buf.Cursor()
	st.Col = grapheme.Column(buf.Line(cur.Row), cur.Col) + 1

	parts := []string{m.style.Status.Render(st.Cursor())}
	if st.Dirty {
		parts = append(parts, m.style.Dirty.Render("modified"))
	}
	if lang := m.cfg.Settings.Highlight.Language; lang != "" {
		parts = append(parts, m.style.Status.Render(lang))
	}
	line := strings.Join(parts, "  ")
	if m.message == "" {
		return line
	}
	msg := m.message
	if m.width > 0 {
		room := m.width - lipgloss.Width(line) - 2
		if room <= 0 {
			return line
		}
		msg = runewidth.Truncate(msg, room, "…")
	}
	return line + "  " + m.style.Message.Render(msg)
}
