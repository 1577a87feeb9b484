package memory

import (
	"log/slog"
	"time"

	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
	"github.com/BrandonKowalski/ribs/pkg/ribs/lifecycle"
	"github.com/BrandonKowalski/ribs/pkg/ribs/navigation"
	"github.com/BrandonKowalski/ribs/pkg/ribs/router"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultAnimationDuration is how long platform-animated transitions take.
const DefaultAnimationDuration = 350 * time.Millisecond

// StackEntry is a single screen on a navigation stack together with the
// transition that put it there.
type StackEntry struct {
	Screen     router.Screen
	Transition navigation.Transition
}

type pending struct {
	due        time.Time
	animated   bool
	completion func()
}

type observer struct {
	target    navigation.Observer
	cancelled bool
}

// Surface is an in-memory navigation stack. Commands change the stack
// immediately; observers hear about the change once its transition settles.
type Surface struct {
	id     uuid.UUID
	name   string
	clock  clockwork.Clock
	logger *slog.Logger

	animation      time.Duration
	entries        []StackEntry
	pending        []pending
	observers      []*observer
	interactivePop bool
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

func WithClock(clock clockwork.Clock) SurfaceOption {
	return func(s *Surface) { s.clock = clock }
}

func WithAnimationDuration(d time.Duration) SurfaceOption {
	return func(s *Surface) { s.animation = d }
}

func WithLogger(logger *slog.Logger) SurfaceOption {
	return func(s *Surface) { s.logger = logger }
}

// NewSurface creates an empty navigation surface.
func NewSurface(name string, opts ...SurfaceOption) *Surface {
	s := &Surface{
		id:        uuid.New(),
		name:      name,
		animation: DefaultAnimationDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.logger == nil {
		s.logger = internal.GetInternalLogger()
	}
	return s
}

func (s *Surface) ScreenID() string { return s.id.String() }

func (s *Surface) Name() string { return s.name }

func (s *Surface) VisibleStack() []router.Screen {
	out := make([]router.Screen, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Screen
	}
	return out
}

// Entries returns a copy of the stack entries, bottom first.
func (s *Surface) Entries() []StackEntry {
	out := make([]StackEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Top returns the top screen, or nil for an empty stack.
func (s *Surface) Top() router.Screen {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1].Screen
}

func (s *Surface) Len() int {
	return len(s.entries)
}

func (s *Surface) Push(screen router.Screen, transition navigation.Transition, completion func()) {
	if screen == nil {
		return
	}
	s.entries = append(s.entries, StackEntry{Screen: screen, Transition: transition})
	s.logger.Debug("Surface push",
		"surface", s.name,
		"screen", NameOf(screen),
		"transition", transition.String(),
	)
	s.schedule(s.duration(transition, navigation.OperationPush), completion)
}

func (s *Surface) Pop(transition navigation.Transition, completion func()) {
	if len(s.entries) <= 1 {
		s.logger.Debug("Surface pop ignored: root screen", "surface", s.name)
		return
	}
	s.entries = s.entries[:len(s.entries)-1]
	s.logger.Debug("Surface pop", "surface", s.name, "transition", transition.String())
	s.schedule(s.duration(transition, navigation.OperationPop), completion)
}

func (s *Surface) PopTo(screen router.Screen, transition navigation.Transition, completion func()) {
	index := router.IndexOfScreen(s.VisibleStack(), screen)
	if index < 0 {
		s.logger.Debug("Surface pop ignored: screen not on stack", "surface", s.name, "screen", NameOf(screen))
		return
	}
	s.entries = s.entries[:index+1]
	s.logger.Debug("Surface pop to", "surface", s.name, "screen", NameOf(screen))
	s.schedule(s.duration(transition, navigation.OperationPop), completion)
}

func (s *Surface) SetStack(screens []router.Screen, transition navigation.Transition, completion func()) {
	op := navigation.OperationPush
	if len(screens) < len(s.entries) {
		op = navigation.OperationPop
	}

	entries := make([]StackEntry, 0, len(screens))
	for _, screen := range screens {
		if screen == nil {
			continue
		}
		entry := StackEntry{Screen: screen, Transition: transition}
		for _, old := range s.entries {
			if router.SameScreen(old.Screen, screen) {
				entry.Transition = old.Transition
				break
			}
		}
		entries = append(entries, entry)
	}
	s.entries = entries

	s.logger.Debug("Surface set stack",
		"surface", s.name,
		"screens", Names(s.VisibleStack()),
	)
	s.schedule(s.duration(transition, op), completion)
}

func (s *Surface) SetInteractivePopEnabled(enabled bool) {
	s.interactivePop = enabled
}

func (s *Surface) InteractivePopEnabled() bool {
	return s.interactivePop
}

func (s *Surface) Observe(target navigation.Observer) lifecycle.Cancellable {
	if target == nil {
		return lifecycle.Nop
	}
	o := &observer{target: target}
	s.observers = append(s.observers, o)
	return lifecycle.Once(func() {
		o.cancelled = true
		for i, candidate := range s.observers {
			if candidate == o {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	})
}

// InteractivePop simulates the user's back gesture. It does nothing while the
// gesture is disabled or only the root screen is left.
func (s *Surface) InteractivePop() bool {
	if !s.interactivePop || len(s.entries) < 2 {
		s.logger.Debug("Interactive pop ignored", "surface", s.name, "enabled", s.interactivePop)
		return false
	}
	s.entries = s.entries[:len(s.entries)-1]
	s.logger.Debug("Interactive pop", "surface", s.name)
	s.schedule(s.animation, nil)
	return true
}

// SystemPop removes the top n screens without going through a router, the
// way a platform back button or a tab reset would. The root screen stays.
func (s *Surface) SystemPop(n int) int {
	if n > len(s.entries)-1 {
		n = len(s.entries) - 1
	}
	if n <= 0 {
		return 0
	}
	s.entries = s.entries[:len(s.entries)-n]
	s.logger.Debug("System pop", "surface", s.name, "count", n)
	s.schedule(0, nil)
	return n
}

// Pending returns the number of transitions that have not settled yet.
func (s *Surface) Pending() int {
	return len(s.pending)
}

// Tick settles every transition whose animation has finished on the clock.
func (s *Surface) Tick() int {
	now := s.clock.Now()
	settled := 0
	for len(s.pending) > 0 && !s.pending[0].due.After(now) {
		p := s.pending[0]
		s.pending = s.pending[1:]
		s.settle(p)
		settled++
	}
	return settled
}

// Settle finishes every pending transition regardless of the clock.
func (s *Surface) Settle() int {
	settled := 0
	for len(s.pending) > 0 {
		p := s.pending[0]
		s.pending = s.pending[1:]
		s.settle(p)
		settled++
	}
	return settled
}

func (s *Surface) duration(transition navigation.Transition, op navigation.Operation) time.Duration {
	if !transition.Animated() {
		return 0
	}
	if animator := transition.Animator(op); animator != nil {
		return animator.Duration()
	}
	return s.animation
}

// schedule settles right away when nothing animates and nothing is queued,
// so transitions always settle in the order they were started.
func (s *Surface) schedule(d time.Duration, completion func()) {
	p := pending{
		due:        s.clock.Now().Add(d),
		animated:   d > 0,
		completion: completion,
	}
	if d <= 0 && len(s.pending) == 0 {
		s.settle(p)
		return
	}
	s.pending = append(s.pending, p)
}

func (s *Surface) settle(p pending) {
	if p.completion != nil {
		p.completion()
	}

	top := s.Top()
	observers := make([]*observer, len(s.observers))
	copy(observers, s.observers)
	for _, o := range observers {
		if o.cancelled {
			continue
		}
		o.target.DidShow(top, p.animated)
	}
}
