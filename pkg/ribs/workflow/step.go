package workflow

import (
	"github.com/BrandonKowalski/ribs/pkg/ribs/lifecycle"
	"go.uber.org/atomic"
)

// node settles once. It starts its upstream the first time someone
// subscribes, and replays its outcome to subscribers that arrive later, so
// forks share a single execution.
type node[A, V any] struct {
	core *core

	start   func()
	started bool
	settled bool
	outcome Outcome[A, V]
	waiting []func(Outcome[A, V])
	onError []func(error)
}

func (n *node[A, V]) subscribe(fn func(Outcome[A, V])) {
	if n.settled {
		fn(n.outcome)
		return
	}
	n.waiting = append(n.waiting, fn)
	if !n.started {
		n.started = true
		if n.start != nil {
			n.start()
		}
	}
}

func (n *node[A, V]) resolve(o Outcome[A, V]) {
	if n.settled || n.core.cancelled() {
		return
	}
	n.settled = true
	n.outcome = o

	if o.IsError() {
		for _, handler := range n.onError {
			handler(o.err)
		}
	}

	waiting := n.waiting
	n.waiting = nil
	for _, fn := range waiting {
		fn(o)
	}
}

// Step is a point in a workflow chain whose outcome carries the next
// actionable item A and a value V.
type Step[W, A, V any] struct {
	wf   *Workflow[W]
	node *node[A, V]
}

// Begin runs f with the item the workflow is subscribed with.
func Begin[W, A, V any](wf *Workflow[W], f func(item W) Producer[A, V]) *Step[W, A, V] {
	return OnStep(wf.Root(), func(item W, _ struct{}) Producer[A, V] {
		return f(item)
	})
}

// OnStep chains the next step. Once step produces a value, f is evaluated
// with the item and value as soon as the item is active, and the producer it
// returns settles the new step. Errors and early completion skip f.
func OnStep[W, A, V, B, U any](step *Step[W, A, V], f func(item A, value V) Producer[B, U]) *Step[W, B, U] {
	c := step.wf.core
	next := &node[B, U]{core: c}

	next.start = func() {
		step.node.subscribe(func(o Outcome[A, V]) {
			switch {
			case o.IsError():
				next.resolve(ErrorOutcome[B, U](o.err))
			case o.IsFinished():
				next.resolve(FinishedOutcome[B, U]())
			default:
				whenActive(c, o.item, func() {
					if c.cancelled() {
						return
					}
					produce(c, f(o.item, o.value), next)
				})
			}
		})
	}

	return &Step[W, B, U]{wf: step.wf, node: next}
}

// whenActive runs fn now if item is active, otherwise on its first activation.
func whenActive(c *core, item any, fn func()) {
	live, ok := item.(lifecycle.Live)
	if !ok || live == nil {
		fn()
		return
	}
	signal := live.Liveness()
	if signal == nil || signal.IsActive() {
		fn()
		return
	}

	var (
		handle lifecycle.Handle
		sub    lifecycle.Cancellable
		fired  bool
	)
	sub = signal.Subscribe(func(active bool) {
		if !active || fired {
			return
		}
		fired = true
		sub.Cancel()
		c.group.Remove(handle)
		fn()
	})
	handle = c.group.Insert(sub)

	c.logger.Debug("Step waiting for its item to become active", "workflow", c.name)
}

func produce[B, U any](c *core, producer Producer[B, U], next *node[B, U]) {
	if producer == nil {
		next.resolve(FinishedOutcome[B, U]())
		return
	}

	var delivered atomic.Bool
	producer(c.ctx, func(o Outcome[B, U]) {
		if !delivered.CompareAndSwap(false, true) {
			return
		}
		c.scheduler.Post(func() { next.resolve(o) })
	})
}

// OnError registers fn to run once if this step settles with an error,
// including errors from earlier steps. It does not change the chain.
func (s *Step[W, A, V]) OnError(fn func(err error)) *Step[W, A, V] {
	if fn == nil {
		return s
	}
	if s.node.settled {
		if s.node.outcome.IsError() {
			fn(s.node.outcome.err)
		}
		return s
	}
	s.node.onError = append(s.node.onError, fn)
	return s
}

// Fork returns a step sharing this one's execution, to build a second chain
// from the same point. Both chains belong to the same workflow.
func (s *Step[W, A, V]) Fork() *Step[W, A, V] {
	s.wf.core.fork()
	return &Step[W, A, V]{wf: s.wf, node: s.node}
}

type branch struct {
	cancelled atomic.Bool
}

// Commit subscribes the chain ending at this step and adds it to the
// workflow's cancellation group. It returns the workflow for Subscribe.
func (s *Step[W, A, V]) Commit() *Workflow[W] {
	c := s.wf.core
	b := &branch{}

	c.committed.Inc()
	c.branches.Inc()
	c.group.Insert(lifecycle.Once(func() {
		b.cancelled.Store(true)
		if c.branches.Dec() == 0 {
			c.cancel()
		}
	}))

	s.node.subscribe(func(o Outcome[A, V]) {
		if b.cancelled.Load() {
			return
		}
		if o.IsError() {
			c.fail(o.err)
			return
		}
		c.complete()
	})

	return s.wf
}
