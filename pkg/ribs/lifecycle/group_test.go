package lifecycle

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ n int32 }

func (c *counter) Cancel() { atomic.AddInt32(&c.n, 1) }

func (c *counter) count() int { return int(atomic.LoadInt32(&c.n)) }

func TestGroup_CancelTwiceIsCancelOnce(t *testing.T) {
	g := NewGroup()
	a, b := &counter{}, &counter{}
	g.Insert(a)
	g.Insert(b)

	g.Cancel()
	g.Cancel()

	assert.Equal(t, 1, a.count())
	assert.Equal(t, 1, b.count())
	assert.True(t, g.IsCancelled())
	assert.True(t, g.IsEmpty())
}

func TestGroup_InsertAfterCancelCancelsImmediately(t *testing.T) {
	g := NewGroup()
	g.Cancel()

	late := &counter{}
	h := g.Insert(late)

	assert.Equal(t, 1, late.count(), "handle must be cancelled before Insert returns")
	assert.Equal(t, Handle(0), h)
	assert.Equal(t, 0, g.Len())
}

func TestGroup_CancelsInInsertionOrder(t *testing.T) {
	var order []int
	var g Group
	for i := 0; i < 5; i++ {
		g.Insert(CancelFunc(func() { order = append(order, i) }))
	}

	g.Cancel()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestGroup_Remove(t *testing.T) {
	g := NewGroup()
	c := &counter{}
	h := g.Insert(c)
	require.Equal(t, 1, g.Len())

	removed := g.Remove(h)
	assert.Same(t, c, removed)
	assert.Nil(t, g.Remove(h))

	g.Cancel()
	assert.Equal(t, 0, c.count())
}

func TestGroup_Nested(t *testing.T) {
	outer, inner := NewGroup(), NewGroup()
	c := &counter{}
	inner.Insert(c)
	outer.Insert(inner)

	outer.Cancel()

	assert.True(t, inner.IsCancelled())
	assert.Equal(t, 1, c.count())
}

func TestGroup_ConcurrentInsertAndCancel(t *testing.T) {
	g := NewGroup()
	items := make([]*counter, 200)
	for i := range items {
		items[i] = &counter{}
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for _, c := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			g.Insert(c)
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			g.Cancel()
		}()
	}

	close(start)
	wg.Wait()

	// Every handle ends up cancelled exactly once, whether it was inserted
	// before or after the group was cancelled.
	for _, c := range items {
		assert.Equal(t, 1, c.count())
	}
}

func TestOnce(t *testing.T) {
	calls := 0
	c := Once(func() { calls++ })

	c.Cancel()
	c.Cancel()

	assert.Equal(t, 1, calls)
}
