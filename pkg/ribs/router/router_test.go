package router

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachChild_ActivatesWhenParentActive(t *testing.T) {
	parent := newNamed("parent", nil)
	parent.Activate()

	child := newNamed("child", nil)
	parent.AttachChild(child)

	assert.True(t, child.IsAttached())
	assert.True(t, child.Interactable().IsActive())
	assert.Equal(t, []Routing{child}, parent.Children())
}

func TestAttachChild_StaysInactiveUnderInactiveParent(t *testing.T) {
	parent := newNamed("parent", nil)
	child := newNamed("child", nil)

	parent.AttachChild(child)

	assert.False(t, child.Interactable().IsActive())

	parent.Activate()
	assert.True(t, child.Interactable().IsActive())
}

func TestAttachChild_LoadsOnce(t *testing.T) {
	loads := 0
	parent := newNamed("parent", nil)
	child := New(nil, WithOnLoad(func() { loads++ }))

	parent.AttachChild(child)
	parent.DetachChild(child)
	parent.AttachChild(child)

	assert.Equal(t, 1, loads)
}

func TestAttachChild_DoubleAttachAssertsInStrictMode(t *testing.T) {
	strictAssertions(t, true)

	first, second := newNamed("first", nil), newNamed("second", nil)
	child := newNamed("child", nil)
	first.AttachChild(child)

	assert.Panics(t, func() { second.AttachChild(child) })
	assert.Panics(t, func() { first.AttachChild(child) })
	assert.Len(t, first.Children(), 1)
	assert.Empty(t, second.Children())
}

func TestAttachChild_DoubleAttachIsIgnoredInProduction(t *testing.T) {
	strictAssertions(t, false)

	first, second := newNamed("first", nil), newNamed("second", nil)
	child := newNamed("child", nil)
	first.AttachChild(child)

	assert.NotPanics(t, func() { second.AttachChild(child) })
	assert.Len(t, first.Children(), 1)
	assert.Empty(t, second.Children())
}

func TestAttachChild_RejectsCycles(t *testing.T) {
	strictAssertions(t, false)

	root := newNamed("root", nil)
	child := newNamed("child", nil)
	root.AttachChild(child)

	child.AttachChild(root)
	root.AttachChild(root)

	assert.Empty(t, child.Children())
	assert.Equal(t, []Routing{child}, root.Children())
}

func TestAttachChildAt(t *testing.T) {
	parent := newNamed("parent", nil)
	a, b, c := newNamed("a", nil), newNamed("b", nil), newNamed("c", nil)

	parent.AttachChild(a)
	parent.AttachChild(c)
	parent.AttachChildAt(b, 1)

	assert.Equal(t, []Routing{a, b, c}, parent.Children())
	assert.Equal(t, 2, parent.IndexOf(c))

	d := newNamed("d", nil)
	parent.AttachChildAt(d, 99)
	assert.Equal(t, 3, parent.IndexOf(d))
}

// Random attach/detach sequences never leave a router under two parents,
// and every successful attach grows exactly one parent by one.
func TestTreeInvariant_SingleParent(t *testing.T) {
	strictAssertions(t, false)

	rng := rand.New(rand.NewSource(42))
	parents := []*Router{newNamed("p0", nil), newNamed("p1", nil), newNamed("p2", nil)}
	children := make([]*Router, 8)
	for i := range children {
		children[i] = New(nil)
	}

	total := func() int {
		n := 0
		for _, p := range parents {
			n += len(p.Children())
		}
		return n
	}

	for step := 0; step < 500; step++ {
		p := parents[rng.Intn(len(parents))]
		c := children[rng.Intn(len(children))]

		before := total()
		if rng.Intn(2) == 0 {
			wasAttached := c.IsAttached()
			p.AttachChild(c)
			if wasAttached {
				require.Equal(t, before, total())
			} else {
				require.Equal(t, before+1, total())
			}
		} else {
			wasChild := p.Contains(c)
			p.DetachChild(c)
			if wasChild {
				require.Equal(t, before-1, total())
			} else {
				require.Equal(t, before, total())
			}
		}

		for _, child := range children {
			owners := 0
			for _, parent := range parents {
				if parent.Contains(child) {
					owners++
				}
			}
			require.LessOrEqual(t, owners, 1)
			require.Equal(t, owners == 1, child.IsAttached())
		}
	}
}

func TestDetachChild_TeardownOrder(t *testing.T) {
	rec := &recorder{}
	root := newNamed("root", rec)
	a := newNamed("a", rec)
	a1 := newNamed("a1", rec)
	a2 := newNamed("a2", rec)
	a2x := newNamed("a2x", rec)

	root.Activate()
	root.AttachChild(a)
	a.AttachChild(a1)
	a.AttachChild(a2)
	a2.AttachChild(a2x)

	var detached []string
	for _, r := range []*Router{root, a, a2} {
		r.ObserveDetach(func(child Routing) { detached = append(detached, child.RouteIdentifier()) })
	}

	rec.events = nil
	root.DetachChild(a)

	assert.Equal(t, []string{"a2x", "a2", "a1", "a"}, detached)
	assert.Equal(t, []string{"resign:a2x", "resign:a2", "resign:a1", "resign:a"}, rec.events)

	for _, r := range []*Router{a, a1, a2, a2x} {
		assert.False(t, r.Interactable().IsActive(), r.RouteIdentifier())
		assert.False(t, r.IsAttached(), r.RouteIdentifier())
	}
	assert.Empty(t, a.Children())
	assert.True(t, root.Interactable().IsActive())
}

func TestDetachChild_ObserverSeesChildStillListed(t *testing.T) {
	parent := newNamed("parent", nil)
	child := newNamed("child", nil)
	parent.AttachChild(child)

	var listed bool
	parent.ObserveDetach(func(c Routing) { listed = parent.Contains(c) })
	parent.DetachChild(child)

	assert.True(t, listed)
	assert.False(t, parent.Contains(child))
}

func TestDetachChild_UnknownChildIsNoOp(t *testing.T) {
	parent := newNamed("parent", nil)
	stranger := newNamed("stranger", nil)
	other := newNamed("other", nil)
	other.AttachChild(stranger)

	parent.DetachChild(stranger)
	parent.DetachChild(nil)

	assert.True(t, stranger.IsAttached())
	assert.True(t, other.Contains(stranger))
}

func TestDetachCurrentChild(t *testing.T) {
	parent := newNamed("parent", nil)
	parent.DetachCurrentChild()

	a, b := newNamed("a", nil), newNamed("b", nil)
	parent.AttachChild(a)
	parent.AttachChild(b)

	parent.DetachCurrentChild()
	assert.Equal(t, []Routing{a}, parent.Children())
}

func TestActivationPropagation(t *testing.T) {
	rec := &recorder{}
	root := newNamed("root", rec)
	child := newNamed("child", rec)
	grand := newNamed("grand", rec)
	root.AttachChild(child)
	child.AttachChild(grand)

	root.Activate()
	assert.Equal(t, []string{"active:root", "active:child", "active:grand"}, rec.events)

	rec.events = nil
	root.Deactivate()
	assert.Equal(t, []string{"resign:grand", "resign:child", "resign:root"}, rec.events)
}

func TestTypeIdentifier(t *testing.T) {
	type PaymentInteractor struct{ *Interactor }
	type Interactor2 struct{}

	assert.Equal(t, "Payment", TypeIdentifier(&PaymentInteractor{}))
	assert.Equal(t, "Interactor", TypeIdentifier(NewInteractor(nil)))
	assert.Equal(t, "Interactor2", TypeIdentifier(Interactor2{}))

	r := New(&PaymentInteractor{Interactor: NewInteractor(nil)})
	assert.Equal(t, "Payment", r.RouteIdentifier())
}

func TestWalk(t *testing.T) {
	root := newNamed("root", nil)
	a, b, a1 := newNamed("a", nil), newNamed("b", nil), newNamed("a1", nil)
	root.AttachChild(a)
	root.AttachChild(b)
	a.AttachChild(a1)

	var seen []string
	Walk(root, func(r Routing) { seen = append(seen, r.RouteIdentifier()) })

	assert.Equal(t, []string{"root", "a", "a1", "b"}, seen)
}
