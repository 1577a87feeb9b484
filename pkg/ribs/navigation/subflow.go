package navigation

import (
	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
	"github.com/BrandonKowalski/ribs/pkg/ribs/router"
)

// SubflowDelegate supplies the behavior every subflow router must define.
type SubflowDelegate interface {
	// DidDetachChild is told about children detached because the platform
	// removed their screens.
	DidDetachChild(child router.Routing)
	// DidBecomeEmpty runs once every screen the subflow pushed has left the stack.
	DidBecomeEmpty(sub *SubflowRouter)
}

// SubflowRouter pushes a multi-screen journey onto an existing navigation
// surface through a base navigator, without owning a surface itself. It
// remembers which screens it contributed so the whole journey can be popped
// as one unit.
type SubflowRouter struct {
	*router.Router

	base     Navigator
	delegate SubflowDelegate
	screens  []router.Screen
	ops      stack
}

// NewSubflowRouter creates a subflow that navigates through base, which is
// either a FlowRouter or another SubflowRouter.
func NewSubflowRouter(interactor router.Interactable, base Navigator, delegate SubflowDelegate, opts ...router.Option) *SubflowRouter {
	internal.Assertf(base != nil, "subflow", "subflow router needs a base navigator")
	internal.Assertf(delegate != nil, "subflow", "subflow router needs a delegate")

	s := &SubflowRouter{
		Router:   router.New(interactor, opts...),
		base:     base,
		delegate: delegate,
	}
	s.ops = stack{
		owner:  s.Router,
		self:   s,
		report: s.didDetachChild,
		settle: s.EnsureViewStackConsistency,
	}
	return s
}

func (s *SubflowRouter) Surface() Surface { return s.base.Surface() }

func (s *SubflowRouter) Transition() Transition { return s.base.Transition() }

// Base returns the navigator the subflow pushes through.
func (s *SubflowRouter) Base() Navigator { return s.base }

// Screens returns the screens the subflow contributed, oldest first.
func (s *SubflowRouter) Screens() []router.Screen {
	out := make([]router.Screen, len(s.screens))
	copy(out, s.screens)
	return out
}

func (s *SubflowRouter) didDetachChild(child router.Routing) {
	if s.delegate != nil {
		s.delegate.DidDetachChild(child)
	}
}

// Push records screen as part of the subflow and pushes it through the base.
func (s *SubflowRouter) Push(screen router.Screen, transition Transition, completion func()) {
	if screen == nil {
		return
	}
	if !router.ContainsScreen(s.screens, screen) {
		s.screens = append(s.screens, screen)
	}
	s.base.Push(screen, transition, completion)
}

// Pop removes the top screen only when this subflow owns it.
func (s *SubflowRouter) Pop(animated bool, completion func()) {
	s.EnsureViewStackConsistency()
	if len(s.screens) == 0 {
		return
	}

	visible := s.Surface().VisibleStack()
	last := s.screens[len(s.screens)-1]
	if len(visible) == 0 || !router.SameScreen(visible[len(visible)-1], last) {
		s.Logger().Debug("Pop ignored: top screen belongs to another router",
			"router", s.RouteIdentifier(),
		)
		return
	}

	s.screens = s.screens[:len(s.screens)-1]
	s.base.Pop(animated, completion)
	if len(s.screens) == 0 && s.delegate != nil {
		s.delegate.DidBecomeEmpty(s)
	}
}

// Replace swaps the visible stack. Screens that were not on the stack before
// become part of the subflow.
func (s *SubflowRouter) Replace(screens []router.Screen, transition Transition, completion func()) {
	visible := s.Surface().VisibleStack()
	for _, screen := range screens {
		if !router.ContainsScreen(visible, screen) && !router.ContainsScreen(s.screens, screen) {
			s.screens = append(s.screens, screen)
		}
	}
	s.base.Replace(screens, transition, completion)
	s.EnsureViewStackConsistency()
}

// EnsureViewStackConsistency forgets screens that left the stack and orders
// the rest by their position on it.
func (s *SubflowRouter) EnsureViewStackConsistency() {
	s.screens = s.visibleScreens(s.Surface().VisibleStack())
}

// EnsureChildrenConsistency detaches children whose screens left the stack.
func (s *SubflowRouter) EnsureChildrenConsistency() {
	s.ops.reconcile(s.Surface().VisibleStack())
}

func (s *SubflowRouter) visibleScreens(visible []router.Screen) []router.Screen {
	var out []router.Screen
	for _, screen := range visible {
		if router.ContainsScreen(s.screens, screen) {
			out = append(out, screen)
		}
	}
	return out
}

// reconcile follows a settled stack change and reports whether the subflow
// lost its last screen.
func (s *SubflowRouter) reconcile(visible []router.Screen) bool {
	s.ops.reconcile(visible)

	before := len(s.screens)
	s.screens = s.visibleScreens(visible)
	if before == 0 || len(s.screens) > 0 {
		return false
	}
	if s.delegate != nil {
		s.delegate.DidBecomeEmpty(s)
	}
	return true
}

// PushAttached attaches child and pushes its screen as part of the subflow.
func (s *SubflowRouter) PushAttached(child router.Routing, transition Transition, completion func()) {
	s.ops.pushAttached(child, transition, completion)
}

// PopDetached detaches the most recent pushed child and pops its screen.
func (s *SubflowRouter) PopDetached(animated bool, completion func()) {
	s.ops.popDetached(animated, completion)
}

// PopTo pops every screen above screen.
func (s *SubflowRouter) PopTo(screen router.Screen, animated bool, completion func()) {
	s.ops.popTo(screen, animated, completion)
}

// PopToRoot keeps the subflow's first child and detaches the rest.
func (s *SubflowRouter) PopToRoot(animated bool, completion func()) {
	s.ops.popToRoot(animated, completion)
}

// PopToIdentifier detaches the last child with identifier and everything after it.
func (s *SubflowRouter) PopToIdentifier(identifier string, animated bool, completion func()) {
	s.ops.popToIdentifier(identifier, animated, completion)
}

// PopModule removes the last pushed child with identifier.
func (s *SubflowRouter) PopModule(identifier string, animated bool, completion func()) {
	s.ops.popModule(identifier, animated, completion)
}

// PopSubflow removes the last nested subflow with identifier.
func (s *SubflowRouter) PopSubflow(identifier string, animated bool, completion func()) {
	s.ops.popSubflow(identifier, animated, completion)
}

// ReplaceLast swaps the subflow's top child for child.
func (s *SubflowRouter) ReplaceLast(child router.Routing, transition Transition, completion func()) {
	s.ops.replaceLast(child, transition, completion)
}

// ReplaceModule swaps the last child with identifier for child.
func (s *SubflowRouter) ReplaceModule(identifier string, child router.Routing, transition Transition, completion func()) {
	s.ops.replaceModule(identifier, child, transition, completion)
}

// AttachSubflow nests sub, which must navigate through this subflow.
func (s *SubflowRouter) AttachSubflow(sub *SubflowRouter) {
	if sub == nil {
		return
	}
	if !internal.Assertf(sub.base == Navigator(s), "subflow", "subflow %s belongs to another navigator", sub.RouteIdentifier()) {
		return
	}
	s.ops.attachSubflow(sub)
}
