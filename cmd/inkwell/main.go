// Command inkwell is a terminal scripting pad: a Lua editor with live
// highlighting, find/replace and an off-thread script runner.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/config"
	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/runner"
	"github.com/iw2rmb/inkwell/session"
)

// version is set via ldflags during release builds.
var version = "dev"

type options struct {
	ConfigPath string
	File       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, closeLog, err := openLog(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	slog.SetDefault(log)

	sess := session.New(cfg,
		session.WithLogger(log),
		session.WithStatusHandler(func(st session.Status) {
			log.Debug("status", "cursor", st.Cursor(), "dirty", st.Dirty, "find", st.Mode.String(), "matches", st.Matches)
		}),
	)
	defer sess.Close()

	if err := openDocument(sess, opts.File); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	worker := runner.NewWorker(runner.LuaInterpreter{}, runner.WithLogger(log))
	defer worker.Close()

	edCfg := editor.Config{
		Session:   sess,
		Settings:  cfg,
		Clipboard: systemClipboard{},
		Runner:    worker,
	}
	if opts.File != "" {
		path := opts.File
		edCfg.Save = func(text string) error { return saveDocument(path, text) }
	}

	p := tea.NewProgram(newApp(editor.New(edCfg)), tea.WithAltScreen(), tea.WithMouseCellMotion())

	if opts.ConfigPath != "" {
		w, err := config.Watch(opts.ConfigPath, func(c config.Config, err error) {
			p.Send(editor.ConfigMsg{Config: c, Err: err})
		}, log)
		if err != nil {
			log.Warn("config watch disabled", "path", opts.ConfigPath, "err", err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "inkwell - terminal scripting pad\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inkwell [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("inkwell %s\n", version)
		os.Exit(0)
	}
	opts.File = flag.Arg(0)
	return opts
}

// defaultConfigPath returns $XDG_CONFIG_HOME/inkwell/config.toml, or "" when
// the user config directory is unknown.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "inkwell", "config.toml")
}

// openLog builds the process logger. The terminal belongs to the UI, so logs
// go to the configured file or nowhere.
func openLog(c config.Log) (*slog.Logger, func(), error) {
	hopts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, hopts)), func() {}, nil
	}
	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, hopts)), func() { _ = f.Close() }, nil
}

// openDocument loads path into sess. A missing file starts a new, dirty
// document.
func openDocument(sess *session.Session, path string) error {
	if path == "" {
		sess.InitializeAsNewFile("")
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		sess.InitializeAsNewFile("")
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	sess.Load(string(data))
	return nil
}

// saveDocument replaces path with text through a temp file and rename.
func saveDocument(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
