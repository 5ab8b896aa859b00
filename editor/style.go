package editor

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/config"
	"github.com/iw2rmb/inkwell/find"
	"github.com/iw2rmb/inkwell/highlight"
	"github.com/iw2rmb/inkwell/overlay"
)

// Style controls the editor chrome. Text colours come from the Theme.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	Option   lipgloss.Style
	OptionOn lipgloss.Style

	Status  lipgloss.Style
	Dirty   lipgloss.Style
	Message lipgloss.Style
}

func DefaultStyle() Style { return NewStyle(lipgloss.DefaultRenderer()) }

// NewStyle returns the default chrome built on r.
func NewStyle(r *lipgloss.Renderer) Style {
	gutter := r.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: r.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          r.NewStyle(),
		Selection:     r.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        r.NewStyle().Reverse(true),
		Option:        r.NewStyle().Foreground(lipgloss.Color("240")),
		OptionOn:      r.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Status:        r.NewStyle().Foreground(lipgloss.Color("250")),
		Dirty:         r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Message:       r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// overlayTags are layered over token tags, later entries on top.
var overlayTags = []string{
	overlay.TagBracketMatch,
	overlay.TagBracketError,
	overlay.TagQuoteMatch,
	overlay.TagQuoteError,
	find.TagHit,
	find.TagCurrent,
}

// Theme maps paint tags to styles. Token tags are applied first, then pair
// tags, then find-hit, then find-current, so the current match always shows
// on top.
type Theme struct {
	base   lipgloss.Style
	styles map[string]lipgloss.Style
	cache  map[string]lipgloss.Style
}

// NewTheme builds lipgloss styles for every entry of a config theme.
func NewTheme(r *lipgloss.Renderer, base lipgloss.Style, styles map[string]config.Style) Theme {
	t := Theme{
		base:   base,
		styles: make(map[string]lipgloss.Style, len(styles)),
		cache:  make(map[string]lipgloss.Style),
	}
	for tag, cs := range styles {
		t.styles[tag] = toLipgloss(r, cs)
	}
	return t
}

func toLipgloss(r *lipgloss.Renderer, cs config.Style) lipgloss.Style {
	st := r.NewStyle()
	if cs.Fg != "" {
		st = st.Foreground(lipgloss.Color(cs.Fg))
	}
	if cs.Bg != "" {
		st = st.Background(lipgloss.Color(cs.Bg))
	}
	if cs.Bold {
		st = st.Bold(true)
	}
	if cs.Italic {
		st = st.Italic(true)
	}
	if cs.Underline {
		st = st.Underline(true)
	}
	return st
}

// Style returns the combined style of a tag set. Unknown tags are ignored.
func (t Theme) Style(tags highlight.Tags) lipgloss.Style {
	if len(tags) == 0 {
		return t.base
	}
	key := strings.Join(tags, ",")
	if st, ok := t.cache[key]; ok {
		return st
	}
	st := t.base
	for _, tag := range tags {
		if !slices.Contains(overlayTags, tag) {
			st = t.layer(st, tag)
		}
	}
	for _, tag := range overlayTags {
		if tags.Has(tag) {
			st = t.layer(st, tag)
		}
	}
	t.cache[key] = st
	return st
}

func (t Theme) layer(st lipgloss.Style, tag string) lipgloss.Style {
	ts, ok := t.styles[tag]
	if !ok {
		return st
	}
	return ts.Inherit(st)
}
