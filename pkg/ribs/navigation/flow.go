package navigation

import (
	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
	"github.com/BrandonKowalski/ribs/pkg/ribs/lifecycle"
	"github.com/BrandonKowalski/ribs/pkg/ribs/router"
)

// FlowDelegate supplies the behavior every flow router must define.
type FlowDelegate interface {
	// RouteToInitial installs the first screen. It runs when the flow router loads.
	RouteToInitial(flow *FlowRouter)
	// DidDetachChild is told about children detached because the platform
	// removed their screens, so their resources can be released.
	DidDetachChild(child router.Routing)
}

// FlowRouter owns a navigation surface and keeps its pushed children in step
// with the surface's visible stack.
type FlowRouter struct {
	*router.Router

	surface    Surface
	transition Transition
	delegate   FlowDelegate
	gesture    *gestureInterlock
	ops        stack
	observing  lifecycle.Cancellable
}

// NewFlowRouter creates a flow router presenting surface. delegate is required.
func NewFlowRouter(interactor router.Interactable, surface Surface, delegate FlowDelegate, opts ...router.Option) *FlowRouter {
	internal.Assertf(surface != nil, "flow", "flow router needs a surface")
	internal.Assertf(delegate != nil, "flow", "flow router needs a delegate")

	f := &FlowRouter{
		surface:    surface,
		transition: DefaultTransition,
		delegate:   delegate,
		gesture:    &gestureInterlock{surface: surface},
	}

	options := append([]router.Option{router.WithScreen(surface)}, opts...)
	options = append(options,
		router.WithOnAttached(f.startObserving),
		router.WithOnDetached(f.stopObserving),
		router.WithOnLoad(f.didLoad),
	)
	f.Router = router.New(interactor, options...)

	f.ops = stack{
		owner:  f.Router,
		self:   f,
		report: f.didDetachChild,
	}

	return f
}

func (f *FlowRouter) Surface() Surface { return f.surface }

// Transition returns the transition of the last push or replace. Animated
// pops reuse it so custom pop animations match their push.
func (f *FlowRouter) Transition() Transition { return f.transition }

// InteractivePopAllowed reports the current state of the gesture interlock.
func (f *FlowRouter) InteractivePopAllowed() bool { return f.gesture.allowed() }

func (f *FlowRouter) didLoad() {
	if f.delegate != nil {
		f.delegate.RouteToInitial(f)
	}
}

func (f *FlowRouter) startObserving() {
	if f.observing != nil || f.surface == nil {
		return
	}
	f.observing = f.surface.Observe(ObserverFunc(f.didShow))
	f.gesture.didShow(len(f.surface.VisibleStack()))
}

func (f *FlowRouter) stopObserving() {
	if f.observing == nil {
		return
	}
	f.observing.Cancel()
	f.observing = nil
}

func (f *FlowRouter) didShow(top router.Screen, animated bool) {
	f.EnsureConsistency()
	f.gesture.didShow(len(f.surface.VisibleStack()))
}

func (f *FlowRouter) didDetachChild(child router.Routing) {
	if f.delegate != nil {
		f.delegate.DidDetachChild(child)
	}
}

// EnsureConsistency detaches every pushed child whose screen is no longer on
// the surface. It runs whenever the surface reports a settled transition and
// is safe to call at any time; a second run without stack changes is a no-op.
func (f *FlowRouter) EnsureConsistency() {
	f.ops.reconcile(f.surface.VisibleStack())
}

// Push places screen on the surface. Interactive pops stay disabled until
// every push and replace in flight has settled.
func (f *FlowRouter) Push(screen router.Screen, transition Transition, completion func()) {
	if screen == nil {
		return
	}
	f.transition = transition
	f.surface.Push(screen, transition, f.gesture.begin(completion))
}

// Replace swaps the visible stack as one presentation.
func (f *FlowRouter) Replace(screens []router.Screen, transition Transition, completion func()) {
	f.transition = transition
	f.surface.SetStack(screens, transition, f.gesture.begin(completion))
}

// Pop removes the top screen. The child that owned it is detached when the
// surface reports the change.
func (f *FlowRouter) Pop(animated bool, completion func()) {
	f.surface.Pop(f.ops.transitionFor(animated), completion)
}

// PushAttached attaches child and pushes its screen.
func (f *FlowRouter) PushAttached(child router.Routing, transition Transition, completion func()) {
	f.ops.pushAttached(child, transition, completion)
}

// PopDetached detaches the most recent pushed child and pops.
func (f *FlowRouter) PopDetached(animated bool, completion func()) {
	f.ops.popDetached(animated, completion)
}

// PopTo pops every screen above screen. It is a no-op when screen is not on the stack.
func (f *FlowRouter) PopTo(screen router.Screen, animated bool, completion func()) {
	f.ops.popTo(screen, animated, completion)
}

// PopToRoot detaches every stacked child but the first, newest first, and
// pops to the first child's screen.
func (f *FlowRouter) PopToRoot(animated bool, completion func()) {
	f.ops.popToRoot(animated, completion)
}

// PopToIdentifier detaches the last child with identifier and everything
// stacked after it. Given children [A, B, A, C], popping to "A" leaves [A, B].
// Unknown identifiers are ignored.
func (f *FlowRouter) PopToIdentifier(identifier string, animated bool, completion func()) {
	f.ops.popToIdentifier(identifier, animated, completion)
}

// PopModule removes the last pushed child with identifier from anywhere in the stack.
func (f *FlowRouter) PopModule(identifier string, animated bool, completion func()) {
	f.ops.popModule(identifier, animated, completion)
}

// PopSubflow removes the last subflow with identifier and all of its screens.
func (f *FlowRouter) PopSubflow(identifier string, animated bool, completion func()) {
	f.ops.popSubflow(identifier, animated, completion)
}

// ReplaceLast swaps the top stacked child for child.
func (f *FlowRouter) ReplaceLast(child router.Routing, transition Transition, completion func()) {
	f.ops.replaceLast(child, transition, completion)
}

// ReplaceModule swaps the last child with identifier for child, in place.
func (f *FlowRouter) ReplaceModule(identifier string, child router.Routing, transition Transition, completion func()) {
	f.ops.replaceModule(identifier, child, transition, completion)
}

// ReplaceRoot detaches every stacked child and stacks children instead.
func (f *FlowRouter) ReplaceRoot(children []router.Routing, transition Transition, completion func()) {
	f.ops.replaceAll(children, transition, completion)
}

// AttachSubflow attaches a subflow built on this flow router.
func (f *FlowRouter) AttachSubflow(sub *SubflowRouter) {
	if sub == nil {
		return
	}
	if !internal.Assertf(sub.base == Navigator(f), "subflow", "subflow %s belongs to another navigator", sub.RouteIdentifier()) {
		return
	}
	f.ops.attachSubflow(sub)
}
