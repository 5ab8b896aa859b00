// Package session holds EditorSession: the single owner of one open
// document and every piece of state derived from it.
//
// A Session owns the buffer, the style paint, the find engine and its
// MatchSet, the overlay coordinator with its pending-clear set, the debounce
// timer, the find bar and the dirty flag. All methods must be called from one
// goroutine (the Bubble Tea event loop); nothing here locks.
//
// Operations that may schedule deferred work return a tea.Cmd. Deliver the
// resulting debounce.FireMsg back through HandleTimer.
package session

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/config"
	"github.com/iw2rmb/inkwell/debounce"
	"github.com/iw2rmb/inkwell/find"
	"github.com/iw2rmb/inkwell/findbar"
	"github.com/iw2rmb/inkwell/highlight"
	"github.com/iw2rmb/inkwell/overlay"
)

type Session struct {
	id  uuid.UUID
	log *slog.Logger
	cfg config.Config

	buf       *buffer.Buffer
	paint     *overlay.Paint
	tokenizer highlight.Tokenizer
	engine    *find.Engine
	coord     *overlay.Coordinator
	timer     *debounce.Debouncer
	bar       findbar.Bar

	view view

	dirty         bool
	suppressDirty bool
	closed        bool

	onStatus   func(Status)
	lastStatus Status
}

type Option func(*Session)

// WithTokenizer overrides the chroma tokenizer built from the config.
func WithTokenizer(t highlight.Tokenizer) Option {
	return func(s *Session) { s.tokenizer = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStatusHandler registers fn to receive every status change.
func WithStatusHandler(fn func(Status)) Option {
	return func(s *Session) { s.onStatus = fn }
}

// New returns an empty, clean session.
func New(cfg config.Config, opts ...Option) *Session {
	s := &Session{
		id:    uuid.New(),
		cfg:   cfg,
		log:   slog.Default(),
		buf:   buffer.New("", buffer.Options{Indent: cfg.Editor.Indent}),
		paint: overlay.NewPaint(0),
		timer: debounce.New(),
		view:  view{height: 1},
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("session", s.id.String())
	if s.tokenizer == nil {
		s.tokenizer = highlight.NewChromaTokenizer(cfg.Highlight.Language, highlight.WithLogger(s.log))
	}

	s.engine = find.NewEngine(&surface{s: s},
		find.WithMinChars(cfg.Find.MinChars),
		find.WithTimeout(cfg.Find.RegexTimeout.D()),
		find.WithLogger(s.log),
	)
	s.coord = overlay.NewCoordinator(s.paint, s.buf, s.tokenizer, s.engine,
		overlay.WithScroller(&s.view),
		overlay.WithLogger(s.log),
	)
	s.lastStatus = s.Status()
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Buffer exposes the document for rendering. Mutate it only through the
// session.
func (s *Session) Buffer() *buffer.Buffer { return s.buf }

// Paint exposes the style overlay for rendering.
func (s *Session) Paint() *overlay.Paint { return s.paint }

func (s *Session) Config() config.Config { return s.cfg }

// GetEditorText returns the document text.
func (s *Session) GetEditorText() string { return s.buf.Text() }

func (s *Session) IsDirty() bool { return s.dirty }

// MarkClean clears the dirty flag, typically after a save.
func (s *Session) MarkClean() {
	s.dirty = false
	s.notify()
}

// Load replaces the document with content and repaints synchronously. CRLF
// and CR line endings become LF. The session is clean afterwards.
func (s *Session) Load(content string) {
	content = normalizeNewlines(content)
	s.timer.Cancel()
	s.coord.Discard()
	s.engine.Clear()

	s.suppressDirty = true
	s.buf.SetText(content)
	s.paint.Reset(nil, s.buf.Len())
	s.suppressDirty = false
	s.dirty = false
	s.view.top = 0

	s.coord.Repaint()
	if s.bar.Visible() {
		s.engine.RunSearchHighlightOnly()
	}
	s.log.Debug("session: loaded", "runes", s.buf.Len(), "lines", s.buf.LineCount())
	s.notify()
}

// InitializeAsNewFile loads content as an unsaved document: it is dirty
// from the start.
func (s *Session) InitializeAsNewFile(content string) {
	s.Load(content)
	s.dirty = true
	s.notify()
}

// ApplyConfig applies a reloaded configuration. Quiet periods affect the
// next scheduled timer.
func (s *Session) ApplyConfig(cfg config.Config) {
	prev := s.cfg
	s.cfg = cfg
	s.buf.SetIndent(cfg.Editor.Indent)
	s.engine.SetMinChars(cfg.Find.MinChars)
	s.engine.SetTimeout(cfg.Find.RegexTimeout.D())

	if cfg.Highlight.Language != prev.Highlight.Language {
		if _, ok := s.tokenizer.(*highlight.ChromaTokenizer); ok {
			s.tokenizer = highlight.NewChromaTokenizer(cfg.Highlight.Language, highlight.WithLogger(s.log))
			s.coord.SetTokenizer(s.tokenizer)
		}
	}
	if cfg.Find.MinChars != prev.Find.MinChars && s.bar.Visible() {
		s.settleIfStale()
		s.engine.RunSearchHighlightOnly()
	}
	s.coord.Repaint()
	s.notify()
}

// Close cancels the pending timer and flushes its work synchronously so no
// stale overlay survives.
func (s *Session) Close() {
	if s.closed {
		return
	}
	if s.timer.Cancel() {
		s.flush()
	}
	s.closed = true
	s.log.Debug("session: closed", "dirty", s.dirty)
}

// HandleTimer runs the deferred recomputation when msg is the live debounce
// fire and reports whether it did. Superseded or foreign messages are
// ignored.
func (s *Session) HandleTimer(msg debounce.FireMsg) bool {
	if !s.timer.Fire(msg) {
		return false
	}
	s.flush()
	s.notify()
	return true
}

// PendingTimer returns the fire message of the scheduled recomputation.
func (s *Session) PendingTimer() (debounce.FireMsg, bool) { return s.timer.Pending() }

// Stale reports whether match highlighting awaits the quiet period.
func (s *Session) Stale() bool { return s.coord.Stale() }

// PendingClear returns the match ranges that will be un-styled when the
// quiet period ends.
func (s *Session) PendingClear() []find.Match { return s.coord.PendingClear() }

// flush performs the recomputation a debounce fire stands for: a token
// repaint, plus a refresh-only search while the find bar is open.
func (s *Session) flush() {
	if s.bar.Visible() {
		s.coord.Settle()
		return
	}
	s.coord.Discard()
	s.coord.Repaint()
}

// settleIfStale flushes pending stale work ahead of an explicit find action.
func (s *Session) settleIfStale() {
	if !s.coord.Stale() {
		return
	}
	s.timer.Cancel()
	s.coord.Settle()
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
