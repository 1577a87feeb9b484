package workflow

import (
	"context"
	"sync"
)

type outcomeKind int

const (
	kindValue outcomeKind = iota
	kindError
	kindFinished
)

// Outcome is the single result of a step: the next actionable item with a
// value, an error, or completion without a value.
type Outcome[A, V any] struct {
	kind  outcomeKind
	item  A
	value V
	err   error
}

func ValueOutcome[A, V any](item A, value V) Outcome[A, V] {
	return Outcome[A, V]{kind: kindValue, item: item, value: value}
}

func ErrorOutcome[A, V any](err error) Outcome[A, V] {
	return Outcome[A, V]{kind: kindError, err: err}
}

// FinishedOutcome ends the chain successfully without running later steps.
func FinishedOutcome[A, V any]() Outcome[A, V] {
	return Outcome[A, V]{kind: kindFinished}
}

func (o Outcome[A, V]) Item() A  { return o.item }
func (o Outcome[A, V]) Value() V { return o.value }

func (o Outcome[A, V]) Err() error { return o.err }

func (o Outcome[A, V]) IsValue() bool    { return o.kind == kindValue }
func (o Outcome[A, V]) IsError() bool    { return o.kind == kindError }
func (o Outcome[A, V]) IsFinished() bool { return o.kind == kindFinished }

// Producer asynchronously produces the outcome of a step. It must call done
// at most once; later calls are ignored. done may be called from any
// goroutine, the outcome is handed to the workflow through its scheduler.
// ctx is cancelled when the workflow is cancelled.
type Producer[A, V any] func(ctx context.Context, done func(Outcome[A, V]))

// Just produces item and value synchronously.
func Just[A, V any](item A, value V) Producer[A, V] {
	return func(_ context.Context, done func(Outcome[A, V])) {
		done(ValueOutcome(item, value))
	}
}

// Fail produces err synchronously.
func Fail[A, V any](err error) Producer[A, V] {
	return func(_ context.Context, done func(Outcome[A, V])) {
		done(ErrorOutcome[A, V](err))
	}
}

// Finish completes the chain at this step.
func Finish[A, V any]() Producer[A, V] {
	return func(_ context.Context, done func(Outcome[A, V])) {
		done(FinishedOutcome[A, V]())
	}
}

// Go runs fn on its own goroutine and produces its result.
func Go[A, V any](fn func(ctx context.Context) (A, V, error)) Producer[A, V] {
	return func(ctx context.Context, done func(Outcome[A, V])) {
		go func() {
			item, value, err := fn(ctx)
			if err != nil {
				done(ErrorOutcome[A, V](err))
				return
			}
			done(ValueOutcome(item, value))
		}()
	}
}

// Deferred is a producer settled by hand, for steps waiting on a callback
// such as a screen reporting the user's choice.
type Deferred[A, V any] struct {
	mu      sync.Mutex
	settled *Outcome[A, V]
	done    func(Outcome[A, V])
}

func NewDeferred[A, V any]() *Deferred[A, V] {
	return &Deferred[A, V]{}
}

// Producer returns the producer to hand to a step. An outcome settled before
// the step runs is delivered as soon as it does.
func (d *Deferred[A, V]) Producer() Producer[A, V] {
	return func(_ context.Context, done func(Outcome[A, V])) {
		d.mu.Lock()
		if d.settled != nil {
			o := *d.settled
			d.mu.Unlock()
			done(o)
			return
		}
		d.done = done
		d.mu.Unlock()
	}
}

func (d *Deferred[A, V]) Resolve(item A, value V) { d.settle(ValueOutcome(item, value)) }

func (d *Deferred[A, V]) Reject(err error) { d.settle(ErrorOutcome[A, V](err)) }

func (d *Deferred[A, V]) Finish() { d.settle(FinishedOutcome[A, V]()) }

func (d *Deferred[A, V]) settle(o Outcome[A, V]) {
	d.mu.Lock()
	if d.settled != nil {
		d.mu.Unlock()
		return
	}
	d.settled = &o
	done := d.done
	d.mu.Unlock()

	if done != nil {
		done(o)
	}
}
