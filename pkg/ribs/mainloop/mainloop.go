// Package mainloop provides the single-threaded execution context that
// router mutation, reconciliation and workflow steps run on.
//
// Work produced on other goroutines (an asynchronous workflow step, a
// platform callback) is posted to a Scheduler and executed in order on the
// goroutine that owns it.
package mainloop

import (
	"context"
	"sync"
)

// Scheduler runs posted functions on its execution context.
type Scheduler interface {
	Post(fn func())
}

type immediate struct{}

func (immediate) Post(fn func()) {
	fn()
}

// Immediate runs posted functions inline on the caller's goroutine. It is the
// right choice when every callback already arrives on the UI timeline.
var Immediate Scheduler = immediate{}

// Loop is a FIFO of posted functions drained by one owning goroutine.
// Post is safe from any goroutine.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	running bool
}

func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}

	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Drain runs every queued function, including ones posted while draining,
// and returns how many ran.
func (l *Loop) Drain() int {
	ran := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return ran
		}
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
			ran++
		}
	}
}

// Pending returns the number of queued functions.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Run drains the loop until ctx is done. Only one Run may be active at a time.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrAlreadyRunning
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
