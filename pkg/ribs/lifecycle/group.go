package lifecycle

import (
	"sync"

	"go.uber.org/atomic"
)

// Handle identifies a Cancellable inside a Group. The zero Handle refers to nothing.
type Handle uint64

// Group is a set of cancellable handles that are cancelled together, once.
// After Cancel, the group is terminal: anything inserted later is cancelled
// before Insert returns.
//
// Group is safe for concurrent use; teardown frequently happens off the UI timeline.
type Group struct {
	mu        sync.Mutex
	cancelled atomic.Bool
	next      Handle
	order     []Handle
	items     map[Handle]Cancellable
}

func NewGroup() *Group {
	return &Group{items: make(map[Handle]Cancellable)}
}

// Insert adds c to the group.
func (g *Group) Insert(c Cancellable) Handle {
	if c == nil {
		return 0
	}

	g.mu.Lock()
	if g.cancelled.Load() {
		g.mu.Unlock()
		c.Cancel()
		return 0
	}
	if g.items == nil {
		g.items = make(map[Handle]Cancellable)
	}
	g.next++
	h := g.next
	g.items[h] = c
	g.order = append(g.order, h)
	g.mu.Unlock()

	return h
}

// Remove takes the handle out of the group without cancelling it.
// It returns nil if the handle is unknown or the group is already cancelled.
func (g *Group) Remove(h Handle) Cancellable {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.items[h]
	if !ok {
		return nil
	}
	delete(g.items, h)
	for i, o := range g.order {
		if o == h {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return c
}

// Cancel cancels every member in insertion order. Only the first call has an effect.
func (g *Group) Cancel() {
	g.mu.Lock()
	if !g.cancelled.CompareAndSwap(false, true) {
		g.mu.Unlock()
		return
	}
	pending := make([]Cancellable, 0, len(g.order))
	for _, h := range g.order {
		pending = append(pending, g.items[h])
	}
	g.items = nil
	g.order = nil
	g.mu.Unlock()

	for _, c := range pending {
		c.Cancel()
	}
}

func (g *Group) IsCancelled() bool {
	return g.cancelled.Load()
}

func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}

func (g *Group) IsEmpty() bool {
	return g.Len() == 0
}
