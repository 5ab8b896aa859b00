// Package config loads editor settings from TOML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Duration is a time.Duration written as a Go duration string ("120ms").
type Duration time.Duration

func (d Duration) D() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Highlight struct {
	QuietPeriod Duration `toml:"quiet_period"`
	Language    string   `toml:"language"`
}

type Find struct {
	QuietPeriod  Duration `toml:"quiet_period"`
	MinChars     int      `toml:"min_chars"`
	RegexTimeout Duration `toml:"regex_timeout"`
}

type Editor struct {
	TabWidth        int    `toml:"tab_width"`
	ShowLineNumbers bool   `toml:"show_line_numbers"`
	Indent          string `toml:"indent"`
}

// Style is the look of one tag. Colours use lipgloss notation ("204",
// "#ff8800").
type Style struct {
	Fg        string `toml:"fg,omitempty"`
	Bg        string `toml:"bg,omitempty"`
	Bold      bool   `toml:"bold,omitempty"`
	Italic    bool   `toml:"italic,omitempty"`
	Underline bool   `toml:"underline,omitempty"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type Config struct {
	Highlight Highlight        `toml:"highlight"`
	Find      Find             `toml:"find"`
	Editor    Editor           `toml:"editor"`
	Theme     map[string]Style `toml:"theme"`
	Log       Log              `toml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Highlight: Highlight{
			QuietPeriod: Duration(120 * time.Millisecond),
			Language:    "lua",
		},
		Find: Find{
			QuietPeriod:  Duration(2 * time.Second),
			MinChars:     3,
			RegexTimeout: Duration(250 * time.Millisecond),
		},
		Editor: Editor{
			TabWidth:        4,
			ShowLineNumbers: true,
			Indent:          "\t",
		},
		Theme: DefaultTheme(),
		Log:   Log{Level: "info"},
	}
}

// DefaultTheme maps the highlight, pair and find tags to styles.
func DefaultTheme() map[string]Style {
	return map[string]Style{
		"tok-keyword":     {Fg: "204", Bold: true},
		"tok-type":        {Fg: "81"},
		"tok-constant":    {Fg: "141"},
		"tok-builtin":     {Fg: "117"},
		"tok-function":    {Fg: "149"},
		"tok-comment":     {Fg: "244", Italic: true},
		"tok-string":      {Fg: "186"},
		"tok-number":      {Fg: "141"},
		"tok-operator":    {Fg: "204"},
		"tok-punctuation": {Fg: "250"},
		"bracket-match":   {Fg: "232", Bg: "42", Bold: true},
		"bracket-error":   {Fg: "231", Bg: "160", Bold: true},
		"quote-match":     {Fg: "232", Bg: "42"},
		"quote-error":     {Fg: "231", Bg: "160"},
		"find-hit":        {Bg: "58"},
		"find-current":    {Fg: "232", Bg: "214", Bold: true},
	}
}

// Parse decodes TOML over the defaults. Keys absent from data keep their
// default values; theme entries are merged per tag.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	theme := cfg.Theme
	cfg.Theme = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	for tag, st := range cfg.Theme {
		theme[tag] = st
	}
	cfg.Theme = theme
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

func (c Config) Validate() error {
	var errs []error
	if c.Highlight.QuietPeriod <= 0 {
		errs = append(errs, fmt.Errorf("%w: highlight.quiet_period must be positive", ErrInvalid))
	}
	if c.Find.QuietPeriod <= 0 {
		errs = append(errs, fmt.Errorf("%w: find.quiet_period must be positive", ErrInvalid))
	}
	if c.Find.MinChars < 1 {
		errs = append(errs, fmt.Errorf("%w: find.min_chars must be at least 1", ErrInvalid))
	}
	if c.Find.RegexTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: find.regex_timeout must not be negative", ErrInvalid))
	}
	if c.Editor.TabWidth < 1 {
		errs = append(errs, fmt.Errorf("%w: editor.tab_width must be at least 1", ErrInvalid))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level))
	}
	return errors.Join(errs...)
}

// SlogLevel returns the configured log level, defaulting to info.
func (l Log) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
