// Package runner executes scripts off the event loop.
//
// A Worker owns one goroutine. Scripts are submitted from the event loop and
// their results come back only through a channel, which Listen turns into
// Bubble Tea messages. The worker never touches editor state.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	ErrBusy   = errors.New("runner: a script is already running")
	ErrClosed = errors.New("runner: worker is closed")
)

// Result is the outcome of one script run.
type Result struct {
	ID      int
	Output  string
	Err     error
	Elapsed time.Duration
}

// ResultMsg carries a Result into the event loop.
type ResultMsg Result

type job struct {
	id  int
	src string
}

type Worker struct {
	interp  Interpreter
	timeout time.Duration
	log     *slog.Logger

	jobs    chan job
	results chan Result

	busy   atomic.Bool
	closed atomic.Bool
	lastID atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	runCancel context.CancelFunc

	closeOnce sync.Once
	done      chan struct{}
}

type Option func(*Worker)

// WithTimeout bounds each run. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(w *Worker) { w.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWorker starts a worker goroutine running scripts with interp.
func NewWorker(interp Interpreter, opts ...Option) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		interp:  interp,
		log:     slog.Default(),
		jobs:    make(chan job, 1),
		results: make(chan Result, 1),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(w)
	}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	defer close(w.done)
	defer close(w.results)
	for {
		select {
		case <-w.ctx.Done():
			return
		case j := <-w.jobs:
			r := w.run(j)
			w.busy.Store(false)
			select {
			case w.results <- r:
			case <-w.ctx.Done():
				return
			}
		}
	}
}

func (w *Worker) run(j job) (r Result) {
	ctx := w.ctx
	var cancel context.CancelFunc
	if w.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	w.mu.Lock()
	w.runCancel = cancel
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.runCancel = nil
		w.mu.Unlock()
		cancel()
	}()

	start := time.Now()
	out, err := w.interp.Run(ctx, j.src)
	r = Result{ID: j.id, Output: out, Err: err, Elapsed: time.Since(start)}
	w.log.Debug("runner: script finished", "id", j.id, "elapsed", r.Elapsed, "err", err)
	return r
}

// Submit queues src for execution and returns its run id.
func (w *Worker) Submit(src string) (int, error) {
	if w.closed.Load() {
		return 0, ErrClosed
	}
	if !w.busy.CompareAndSwap(false, true) {
		return 0, ErrBusy
	}
	id := int(w.lastID.Add(1))
	select {
	case w.jobs <- job{id: id, src: src}:
		return id, nil
	case <-w.ctx.Done():
		w.busy.Store(false)
		return 0, ErrClosed
	}
}

// Busy reports whether a script is queued or running.
func (w *Worker) Busy() bool { return w.busy.Load() }

// Cancel stops the running script, if any.
func (w *Worker) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.runCancel != nil {
		w.runCancel()
	}
}

// Results delivers one Result per submitted script. It is closed by Close.
func (w *Worker) Results() <-chan Result { return w.results }

// Listen waits for the next result. Re-issue it after each ResultMsg.
func (w *Worker) Listen() tea.Cmd {
	return func() tea.Msg {
		r, ok := <-w.results
		if !ok {
			return nil
		}
		return ResultMsg(r)
	}
}

// Close cancels any running script and stops the worker.
func (w *Worker) Close() {
	w.closeOnce.Do(func() {
		w.closed.Store(true)
		w.cancel()
		<-w.done
	})
}
