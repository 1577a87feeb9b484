package navigation

import (
	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
	"github.com/BrandonKowalski/ribs/pkg/ribs/router"
	"github.com/google/uuid"
)

// entry is one attached child that currently owns screens on the surface.
// Pushed children own their own screen; subflows own every screen they pushed.
type entry struct {
	child   router.Routing
	subflow *SubflowRouter
	screens []router.Screen
}

// stack implements the identifier-targeted operations shared by flow and
// subflow routers. Subflows are tracked in a table next to the children list
// so they can be told apart without inspecting child types.
type stack struct {
	owner    *router.Router
	self     Navigator
	subflows map[uuid.UUID]*SubflowRouter

	// report is told about children the platform removed on its own.
	report func(child router.Routing)
	// settle runs after every explicit mutation.
	settle func()
}

func (s *stack) surface() Surface {
	return s.self.Surface()
}

func (s *stack) transitionFor(animated bool) Transition {
	if !animated {
		return NotAnimated
	}
	if last := s.self.Transition(); last.Animated() {
		return last
	}
	return DefaultTransition
}

func (s *stack) subflowOf(child router.Routing) *SubflowRouter {
	sub, ok := s.subflows[child.ID()]
	if !ok {
		return nil
	}
	if !s.owner.Contains(child) {
		delete(s.subflows, child.ID())
		return nil
	}
	return sub
}

// entries returns the children owning visible screens, in attach order.
func (s *stack) entries(visible []router.Screen) []entry {
	var out []entry
	for _, child := range s.owner.Children() {
		if sub := s.subflowOf(child); sub != nil {
			if owned := sub.visibleScreens(visible); len(owned) > 0 {
				out = append(out, entry{child: child, subflow: sub, screens: owned})
			}
			continue
		}
		if child.Mode() != router.ModePushed || child.Screen() == nil {
			continue
		}
		if router.ContainsScreen(visible, child.Screen()) {
			out = append(out, entry{child: child, screens: []router.Screen{child.Screen()}})
		}
	}
	return out
}

func lastMatch(entries []entry, identifier string) int {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].child.RouteIdentifier() == identifier {
			return i
		}
	}
	return -1
}

func without(stack []router.Screen, removed []router.Screen) []router.Screen {
	out := make([]router.Screen, 0, len(stack))
	for _, screen := range stack {
		if !router.ContainsScreen(removed, screen) {
			out = append(out, screen)
		}
	}
	return out
}

func (s *stack) detach(child router.Routing, report bool) {
	if !s.owner.Contains(child) {
		return
	}
	s.owner.DetachChild(child)
	delete(s.subflows, child.ID())
	if report && s.report != nil {
		s.report(child)
	}
}

func (s *stack) done() {
	if s.settle != nil {
		s.settle()
	}
}

func (s *stack) attachSubflow(sub *SubflowRouter) {
	if s.subflows == nil {
		s.subflows = make(map[uuid.UUID]*SubflowRouter)
	}
	s.owner.AttachChild(sub)
	if s.owner.Contains(sub) {
		s.subflows[sub.ID()] = sub
	}
}

func (s *stack) pushAttached(child router.Routing, transition Transition, completion func()) {
	if child == nil || child.Screen() == nil {
		s.owner.Logger().Warn("Push ignored: child has no screen", "router", s.owner.RouteIdentifier())
		return
	}

	s.owner.AttachChild(child)
	if !s.owner.Contains(child) {
		return
	}
	child.SetMode(router.ModePushed)
	s.self.Push(child.Screen(), transition, completion)
}

// lastPushed returns the most recently attached child that owns a visible screen.
func (s *stack) lastPushed() (entry, bool) {
	entries := s.entries(s.surface().VisibleStack())
	if len(entries) == 0 {
		return entry{}, false
	}
	return entries[len(entries)-1], true
}

func (s *stack) popDetached(animated bool, completion func()) {
	if last, ok := s.lastPushed(); ok && last.subflow == nil {
		s.detach(last.child, false)
	}
	s.self.Pop(animated, completion)
}

func (s *stack) popTo(screen router.Screen, animated bool, completion func()) {
	surface := s.surface()
	if !router.ContainsScreen(surface.VisibleStack(), screen) {
		s.owner.Logger().Debug("Pop ignored: screen is not on the stack", "router", s.owner.RouteIdentifier())
		return
	}
	surface.PopTo(screen, s.transitionFor(animated), completion)
	s.done()
}

// popToRoot keeps the first stacked child and detaches the rest, newest first.
func (s *stack) popToRoot(animated bool, completion func()) {
	surface := s.surface()
	entries := s.entries(surface.VisibleStack())
	if len(entries) == 0 {
		return
	}

	for i := len(entries) - 1; i >= 1; i-- {
		s.detach(entries[i].child, false)
	}

	root := entries[0].screens
	surface.PopTo(root[len(root)-1], s.transitionFor(animated), completion)
	s.done()
}

// popToIdentifier detaches the last child matching identifier together with
// every child stacked after it, and keeps the surviving screens in order.
func (s *stack) popToIdentifier(identifier string, animated bool, completion func()) {
	surface := s.surface()
	visible := surface.VisibleStack()
	entries := s.entries(visible)

	index := lastMatch(entries, identifier)
	if index < 0 {
		s.owner.Logger().Debug("Pop ignored: identifier not attached",
			"router", s.owner.RouteIdentifier(),
			"identifier", identifier,
		)
		return
	}

	var removed []router.Screen
	for i := len(entries) - 1; i >= index; i-- {
		s.detach(entries[i].child, false)
		removed = append(removed, entries[i].screens...)
	}

	surface.SetStack(without(visible, removed), s.transitionFor(animated), completion)
	s.done()
}

// popModule removes a single pushed child from anywhere in the stack.
func (s *stack) popModule(identifier string, animated bool, completion func()) {
	s.remove(identifier, false, animated, completion)
}

// popSubflow removes a whole subflow and every screen it pushed.
func (s *stack) popSubflow(identifier string, animated bool, completion func()) {
	s.remove(identifier, true, animated, completion)
}

func (s *stack) remove(identifier string, subflow bool, animated bool, completion func()) {
	surface := s.surface()
	visible := surface.VisibleStack()

	var candidates []entry
	for _, e := range s.entries(visible) {
		if (e.subflow != nil) == subflow {
			candidates = append(candidates, e)
		}
	}

	index := lastMatch(candidates, identifier)
	if index < 0 {
		s.owner.Logger().Debug("Remove ignored: identifier not attached",
			"router", s.owner.RouteIdentifier(),
			"identifier", identifier,
			"subflow", subflow,
		)
		return
	}

	target := candidates[index]
	s.detach(target.child, false)
	surface.SetStack(without(visible, target.screens), s.transitionFor(animated), completion)
	s.done()
}

func (s *stack) replaceLast(child router.Routing, transition Transition, completion func()) {
	last, ok := s.lastPushed()
	if !ok {
		s.owner.Logger().Debug("Replace ignored: nothing pushed", "router", s.owner.RouteIdentifier())
		return
	}
	s.replace(last, child, transition, completion)
}

func (s *stack) replaceModule(identifier string, child router.Routing, transition Transition, completion func()) {
	entries := s.entries(s.surface().VisibleStack())
	index := lastMatch(entries, identifier)
	if index < 0 {
		s.owner.Logger().Debug("Replace ignored: identifier not attached",
			"router", s.owner.RouteIdentifier(),
			"identifier", identifier,
		)
		return
	}
	s.replace(entries[index], child, transition, completion)
}

// replace puts child where old was, both in the tree and on the stack.
func (s *stack) replace(old entry, child router.Routing, transition Transition, completion func()) {
	if !s.replaceable(child) {
		return
	}

	visible := s.surface().VisibleStack()
	index := s.owner.IndexOf(old.child)

	s.detach(old.child, false)
	s.owner.AttachChildAt(child, index)
	if !s.owner.Contains(child) {
		return
	}
	child.SetMode(router.ModePushed)

	screens := make([]router.Screen, 0, len(visible))
	placed := false
	for _, screen := range visible {
		if router.ContainsScreen(old.screens, screen) {
			if !placed {
				screens = append(screens, child.Screen())
				placed = true
			}
			continue
		}
		screens = append(screens, screen)
	}

	s.self.Replace(screens, transition, completion)
	s.done()
}

// replaceable reports whether child can take another child's place. Nothing
// is detached when it cannot.
func (s *stack) replaceable(child router.Routing) bool {
	if child == nil || child.Screen() == nil {
		s.owner.Logger().Warn("Replace ignored: child has no screen", "router", s.owner.RouteIdentifier())
		return false
	}
	return internal.Assertf(!child.IsAttached(), "replace",
		"router %s is already attached and cannot replace a child of %s",
		child.RouteIdentifier(), s.owner.RouteIdentifier())
}

// replaceAll swaps every stacked child for children, in order. Children
// without a screen are skipped.
func (s *stack) replaceAll(children []router.Routing, transition Transition, completion func()) {
	for _, child := range children {
		if child == nil || child.Screen() == nil {
			continue
		}
		if !s.replaceable(child) {
			return
		}
	}

	visible := s.surface().VisibleStack()
	entries := s.entries(visible)

	var removed []router.Screen
	for i := len(entries) - 1; i >= 0; i-- {
		s.detach(entries[i].child, false)
		removed = append(removed, entries[i].screens...)
	}

	screens := without(visible, removed)
	for _, child := range children {
		if child == nil || child.Screen() == nil {
			continue
		}
		s.owner.AttachChild(child)
		if !s.owner.Contains(child) {
			continue
		}
		child.SetMode(router.ModePushed)
		screens = append(screens, child.Screen())
	}

	s.self.Replace(screens, transition, completion)
	s.done()
}

// reconcile detaches every child whose screens left the stack, newest first.
// Subflows reconcile their own children before they are judged.
func (s *stack) reconcile(visible []router.Screen) {
	children := s.owner.Children()
	for i := len(children) - 1; i >= 0; i-- {
		child := children[i]

		if sub := s.subflowOf(child); sub != nil {
			if gone := sub.reconcile(visible); gone {
				s.detach(child, true)
			}
			continue
		}

		if child.Mode() != router.ModePushed || child.Screen() == nil {
			continue
		}
		if !router.ContainsScreen(visible, child.Screen()) {
			s.owner.Logger().Debug("Screen left the stack",
				"router", s.owner.RouteIdentifier(),
				"child", child.RouteIdentifier(),
			)
			s.detach(child, true)
		}
	}
}
