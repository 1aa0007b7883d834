// Package loop runs board and timer work on a single goroutine.
//
// HTTP handlers run on many goroutines; they hand closures to Do so that the
// board and the pomodoro timer only ever see one caller at a time, the same
// way the TUI's update loop does.
package loop

import (
	"context"
	"errors"
	"time"
)

// ErrStopped is returned by Do once Run has returned
var ErrStopped = errors.New("event loop stopped")

type job struct {
	fn   func()
	done chan struct{}
}

// Loop executes queued closures and a periodic tick on one goroutine
type Loop struct {
	jobs     chan job
	restart  chan struct{}
	stopped  chan struct{}
	interval time.Duration
	onTick   func()
}

// New creates a loop that calls onTick every interval while running.
// A nil onTick or non-positive interval disables ticking.
func New(interval time.Duration, onTick func()) *Loop {
	return &Loop{
		jobs:     make(chan job),
		restart:  make(chan struct{}, 1),
		stopped:  make(chan struct{}),
		interval: interval,
		onTick:   onTick,
	}
}

// Run processes jobs and ticks until ctx is cancelled
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	var (
		ticker *time.Ticker
		tick   <-chan time.Time
	)
	if l.onTick != nil && l.interval > 0 {
		ticker = time.NewTicker(l.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			l.onTick()
		case <-l.restart:
			l.resetTicker(ticker)
		case j := <-l.jobs:
			j.fn()
			close(j.done)
			// a restart requested by the job applies before the next tick can fire
			select {
			case <-l.restart:
				l.resetTicker(ticker)
			default:
			}
		}
	}
}

func (l *Loop) resetTicker(ticker *time.Ticker) {
	if ticker != nil {
		ticker.Reset(l.interval)
	}
}

// RestartTick makes the next tick fire one full interval from now. Hosts call
// it when the timer starts so the first second is a whole second.
func (l *Loop) RestartTick() {
	select {
	case l.restart <- struct{}{}:
	default:
	}
}

// Do runs fn on the loop goroutine and waits for it to finish
func (l *Loop) Do(ctx context.Context, fn func()) error {
	j := job{fn: fn, done: make(chan struct{})}
	select {
	case l.jobs <- j:
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// Once accepted the job always runs to completion.
	<-j.done
	return nil
}
