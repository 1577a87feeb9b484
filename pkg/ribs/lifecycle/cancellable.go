// Package lifecycle provides the two primitives every rib is built on: a
// boolean activity stream that observers can subscribe to, and a group of
// cancellable handles that are cancelled together exactly once.
package lifecycle

import "go.uber.org/atomic"

// Cancellable is a handle to work or a subscription that can be stopped.
type Cancellable interface {
	Cancel()
}

// CancelFunc adapts a plain function to Cancellable.
type CancelFunc func()

func (f CancelFunc) Cancel() {
	if f != nil {
		f()
	}
}

type once struct {
	done atomic.Bool
	fn   func()
}

func (o *once) Cancel() {
	if o.done.CompareAndSwap(false, true) && o.fn != nil {
		o.fn()
	}
}

// Once returns a Cancellable that runs fn the first time it is cancelled and
// ignores every later call, from any goroutine.
func Once(fn func()) Cancellable {
	return &once{fn: fn}
}

// Nop is a Cancellable that does nothing.
var Nop Cancellable = CancelFunc(nil)
