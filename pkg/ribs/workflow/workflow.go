// Package workflow chains asynchronous steps that each act on an actionable
// item, usually an interactor reached by routing deeper into the tree.
//
// A step runs only once its actionable item is active. Items that expose a
// liveness signal (lifecycle.Live) are waited on; the first activation is
// used and later flapping is ignored. Items without a signal count as active.
//
//	wf := workflow.New[*RootInteractor](workflow.WithHooks(workflow.Hooks{
//	    DidComplete: func() { log.Println("deep link handled") },
//	}))
//	step := workflow.Begin(wf, func(root *RootInteractor) workflow.Producer[*ShopInteractor, struct{}] {
//	    return root.RouteToShop()
//	})
//	workflow.OnStep(step, func(shop *ShopInteractor, _ struct{}) workflow.Producer[*ShopInteractor, string] {
//	    return shop.Open(itemID)
//	}).Commit()
//	cancel := wf.Subscribe(root)
//
// Errors travel down the chain as values: once a step fails no later step
// runs, OnError handlers on the way fire, and the workflow reports the error
// once. A workflow forked into several committed branches still reports
// completion only once, and cancelling it cancels every branch.
package workflow

import (
	"context"
	"log/slog"

	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
	"github.com/BrandonKowalski/ribs/pkg/ribs/lifecycle"
	"github.com/BrandonKowalski/ribs/pkg/ribs/mainloop"
	"go.uber.org/atomic"
)

// Hooks are optional callbacks for workflow lifecycle events.
type Hooks struct {
	DidComplete     func()
	DidFork         func()
	DidReceiveError func(err error)
}

type config struct {
	hooks     Hooks
	scheduler mainloop.Scheduler
	logger    *slog.Logger
	name      string
}

// Option configures a Workflow.
type Option func(*config)

func WithHooks(hooks Hooks) Option {
	return func(c *config) { c.hooks = hooks }
}

// WithScheduler sets where step outcomes are delivered. Use a mainloop.Loop
// when producers finish on other goroutines. Defaults to mainloop.Immediate.
func WithScheduler(s mainloop.Scheduler) Option {
	return func(c *config) { c.scheduler = s }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithName labels the workflow in logs.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// core is the state every step and fork of a workflow shares.
type core struct {
	config

	group  *lifecycle.Group
	ctx    context.Context
	cancel context.CancelFunc

	branches  atomic.Int64
	committed atomic.Int64
	completed atomic.Bool
	errored   atomic.Bool
	err       atomic.Error
}

func (c *core) cancelled() bool {
	return c.ctx.Err() != nil
}

func (c *core) complete() {
	if !c.completed.CompareAndSwap(false, true) {
		return
	}
	c.logger.Debug("Workflow completed", "workflow", c.name)
	if c.hooks.DidComplete != nil {
		c.hooks.DidComplete()
	}
}

func (c *core) fail(err error) {
	if !c.errored.CompareAndSwap(false, true) {
		return
	}
	c.err.Store(err)
	c.logger.Debug("Workflow failed", "workflow", c.name, "error", err)
	if c.hooks.DidReceiveError != nil {
		c.hooks.DidReceiveError(err)
	}
}

func (c *core) fork() {
	c.logger.Debug("Workflow forked", "workflow", c.name)
	if c.hooks.DidFork != nil {
		c.hooks.DidFork()
	}
}

// Workflow is a chain of steps starting from an actionable item of type W.
type Workflow[W any] struct {
	core *core
	root *node[W, struct{}]
}

// New creates an unstarted workflow.
func New[W any](opts ...Option) *Workflow[W] {
	cfg := config{scheduler: mainloop.Immediate}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.scheduler == nil {
		cfg.scheduler = mainloop.Immediate
	}
	if cfg.logger == nil {
		cfg.logger = internal.GetInternalLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &core{
		config: cfg,
		group:  lifecycle.NewGroup(),
		ctx:    ctx,
		cancel: cancel,
	}
	return &Workflow[W]{
		core: c,
		root: &node[W, struct{}]{core: c},
	}
}

// Root returns the step that yields the item passed to Subscribe.
func (wf *Workflow[W]) Root() *Step[W, W, struct{}] {
	return &Step[W, W, struct{}]{wf: wf, node: wf.root}
}

// Subscribe starts the workflow with item and returns the group holding every
// committed branch. Cancelling it cancels the workflow. Only the first call
// starts the chain.
func (wf *Workflow[W]) Subscribe(item W) *lifecycle.Group {
	if wf.core.committed.Load() == 0 {
		internal.AssertionFailure("subscribe", "%v", ErrNotCommitted)
		return lifecycle.NewGroup()
	}

	wf.core.logger.Debug("Workflow started", "workflow", wf.core.name)
	wf.root.resolve(ValueOutcome(item, struct{}{}))
	return wf.core.group
}

// Cancel stops every committed branch. Outcomes that arrive afterwards are
// dropped and no further hooks fire.
func (wf *Workflow[W]) Cancel() {
	wf.core.group.Cancel()
	wf.core.cancel()
}

// Track ties c to the workflow: it is cancelled together with the workflow.
func (wf *Workflow[W]) Track(c lifecycle.Cancellable) {
	if c != nil {
		wf.core.group.Insert(c)
	}
}

func (wf *Workflow[W]) IsCompleted() bool { return wf.core.completed.Load() }

// Err returns the chain error the workflow reported, ErrCancelled after
// cancellation, or nil.
func (wf *Workflow[W]) Err() error {
	if err := wf.core.err.Load(); err != nil {
		return err
	}
	if wf.core.cancelled() {
		return ErrCancelled
	}
	return nil
}

// Context is cancelled together with the workflow.
func (wf *Workflow[W]) Context() context.Context { return wf.core.ctx }
