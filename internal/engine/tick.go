package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("frame loop stopped")

// Loop is the real-time Scheduler. It owns one goroutine, and every session
// mutation runs on it: scheduled frames at tick boundaries, external work via Do.
type Loop struct {
	Interval time.Duration // time between frame boundaries
	Tick     uint64        // frame boundaries that ran a callback

	tasks    chan func()
	next     func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop ticking at fps frames per second. Non-positive
// values use DefaultFPS.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		Interval: time.Second / time.Duration(fps),
		tasks:    make(chan func()),
		done:     make(chan struct{}),
	}
}

// Schedule implements Scheduler. It must be called from the loop goroutine,
// or before Run starts.
func (l *Loop) Schedule(frame func()) { l.next = frame }

// Cancel implements Scheduler. Same goroutine rule as Schedule.
func (l *Loop) Cancel() { l.next = nil }

// Run processes frames and submitted work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stopOnce.Do(func() { close(l.done) })

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	slog.Info("frame loop started", "interval", l.Interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("frame loop stopped", "tick", l.Tick)
			return nil
		case fn := <-l.tasks:
			fn()
		case <-ticker.C:
			l.step()
		}
	}
}

// step runs the pending frame, if any.
func (l *Loop) step() {
	fn := l.next
	if fn == nil {
		return
	}
	l.next = nil
	l.Tick++
	fn()
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.tasks <- task:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
