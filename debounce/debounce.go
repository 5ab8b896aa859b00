// Package debounce coalesces bursts of events into a single deferred
// recomputation on a Bubble Tea event loop.
//
// Every Restart invalidates the previously scheduled fire, so only the tick
// belonging to the latest Restart is accepted by Fire. There is no goroutine
// and no lock: the timer is a tea.Tick command and the state is owned by the
// event loop.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// FireMsg is delivered when a scheduled quiet period elapses.
type FireMsg struct {
	ID  int
	Gen uint64
}

// Debouncer schedules at most one pending fire at a time.
type Debouncer struct {
	id      int
	gen     uint64
	pending bool
	delay   time.Duration
}

func New() *Debouncer {
	return &Debouncer{id: nextID()}
}

// ID identifies the debouncer in FireMsg values.
func (d *Debouncer) ID() int { return d.id }

// Restart cancels any pending fire and schedules a new one after delay.
func (d *Debouncer) Restart(delay time.Duration) tea.Cmd {
	d.gen++
	d.pending = true
	d.delay = delay
	msg := FireMsg{ID: d.id, Gen: d.gen}
	return tea.Tick(delay, func(time.Time) tea.Msg { return msg })
}

// Fire reports whether msg is the live fire for this debouncer and, if so,
// consumes it. Ticks from earlier restarts or from a cancelled schedule
// return false.
func (d *Debouncer) Fire(msg FireMsg) bool {
	if msg.ID != d.id || !d.pending || msg.Gen != d.gen {
		return false
	}
	d.pending = false
	return true
}

// Cancel drops the pending fire, if any, and reports whether one existed.
func (d *Debouncer) Cancel() bool {
	was := d.pending
	d.pending = false
	d.gen++
	return was
}

// Pending returns the message the live timer will deliver.
func (d *Debouncer) Pending() (FireMsg, bool) {
	if !d.pending {
		return FireMsg{}, false
	}
	return FireMsg{ID: d.id, Gen: d.gen}, true
}

// Delay returns the quiet period of the most recent Restart.
func (d *Debouncer) Delay() time.Duration { return d.delay }
