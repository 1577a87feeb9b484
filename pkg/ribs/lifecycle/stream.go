package lifecycle

// Observer receives activity transitions.
type Observer func(active bool)

// Signal is a subscribable boolean liveness source.
type Signal interface {
	IsActive() bool
	// Subscribe delivers the current state immediately and every transition
	// after it until the returned handle is cancelled.
	Subscribe(fn Observer) Cancellable
}

// Live is implemented by anything that exposes a liveness signal, typically
// an interactor. Workflow steps wait on it before running.
type Live interface {
	Liveness() Signal
}

type subscription struct {
	fn      Observer
	removed bool
}

// Stream is the activity state of one unit of business logic. Only
// transitions are published; setting the current value again is silent.
//
// A Stream is confined to the UI timeline and is not safe for concurrent use.
type Stream struct {
	active    bool
	closed    bool
	observers []*subscription
}

// NewStream creates a stream with the given initial state.
func NewStream(initial bool) *Stream {
	return &Stream{active: initial}
}

func (s *Stream) IsActive() bool {
	return s.active
}

func (s *Stream) Subscribe(fn Observer) Cancellable {
	if fn == nil || s.closed {
		return Nop
	}

	sub := &subscription{fn: fn}
	s.observers = append(s.observers, sub)
	fn(s.active)

	return CancelFunc(func() { s.remove(sub) })
}

// Set moves the stream to active and notifies observers if that is a transition.
func (s *Stream) Set(active bool) {
	if s.closed || s.active == active {
		return
	}
	s.active = active

	snapshot := make([]*subscription, len(s.observers))
	copy(snapshot, s.observers)
	for _, sub := range snapshot {
		if sub.removed {
			continue
		}
		sub.fn(active)
		// An observer may flip the state again; later observers must not see a stale value.
		if s.active != active {
			return
		}
	}
}

// Close drops every observer. A closed stream ignores Set and Subscribe.
func (s *Stream) Close() {
	for _, sub := range s.observers {
		sub.removed = true
	}
	s.observers = nil
	s.closed = true
}

// ObserverCount returns the number of live subscriptions.
func (s *Stream) ObserverCount() int {
	return len(s.observers)
}

func (s *Stream) remove(target *subscription) {
	if target.removed {
		return
	}
	target.removed = true
	for i, sub := range s.observers {
		if sub == target {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}
