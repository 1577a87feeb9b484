package memory

import (
	"testing"
	"time"

	"github.com/BrandonKowalski/ribs/pkg/ribs/navigation"
	"github.com/BrandonKowalski/ribs/pkg/ribs/router"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shown struct {
	top      string
	animated bool
}

func observe(s *Surface) *[]shown {
	var seen []shown
	s.Observe(navigation.ObserverFunc(func(top router.Screen, animated bool) {
		seen = append(seen, shown{top: NameOf(top), animated: animated})
	}))
	return &seen
}

func TestSurfaceNotAnimatedSettlesImmediately(t *testing.T) {
	s := NewSurface("main", WithClock(clockwork.NewFakeClock()))
	seen := observe(s)

	completed := false
	s.Push(NewScreen("root"), navigation.NotAnimated, func() { completed = true })

	assert.True(t, completed)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, []shown{{top: "root"}}, *seen)
}

func TestSurfaceAnimatedSettlesOnClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSurface("main", WithClock(clock))
	seen := observe(s)

	s.Push(NewScreen("root"), navigation.NotAnimated, nil)
	s.Push(NewScreen("detail"), navigation.DefaultTransition, nil)

	assert.Equal(t, []string{"root", "detail"}, Names(s.VisibleStack()))
	assert.Equal(t, 1, s.Pending())

	clock.Advance(DefaultAnimationDuration / 2)
	assert.Equal(t, 0, s.Tick())

	clock.Advance(DefaultAnimationDuration)
	assert.Equal(t, 1, s.Tick())
	assert.Equal(t, []shown{{top: "root"}, {top: "detail", animated: true}}, *seen)
}

func TestSurfaceCustomAnimatorDuration(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSurface("main", WithClock(clock))
	s.Push(NewScreen("root"), navigation.NotAnimated, nil)

	s.Push(NewScreen("slow"), navigation.PushTransition(navigation.AnimatorDuration(2*time.Second)), nil)

	clock.Advance(DefaultAnimationDuration)
	assert.Equal(t, 0, s.Tick())
	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, s.Tick())
}

func TestSurfaceKeepsSettleOrder(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSurface("main", WithClock(clock))
	seen := observe(s)

	s.Push(NewScreen("root"), navigation.NotAnimated, nil)
	s.Push(NewScreen("a"), navigation.DefaultTransition, nil)
	s.Push(NewScreen("b"), navigation.NotAnimated, nil)

	assert.Equal(t, 2, s.Pending())
	assert.Equal(t, 2, s.Settle())
	assert.Len(t, *seen, 3)
}

func TestSurfacePopTo(t *testing.T) {
	s := NewSurface("main", WithClock(clockwork.NewFakeClock()))
	root, a, b := NewScreen("root"), NewScreen("a"), NewScreen("b")
	s.SetStack([]router.Screen{root, a, b}, navigation.NotAnimated, nil)

	s.PopTo(NewScreen("a"), navigation.NotAnimated, nil)
	assert.Equal(t, 3, s.Len(), "same name is not the same screen")

	s.PopTo(a, navigation.NotAnimated, nil)
	assert.Equal(t, []string{"root", "a"}, Names(s.VisibleStack()))
}

func TestSurfacePopKeepsRoot(t *testing.T) {
	s := NewSurface("main", WithClock(clockwork.NewFakeClock()))
	s.Push(NewScreen("root"), navigation.NotAnimated, nil)

	s.Pop(navigation.NotAnimated, nil)
	assert.Equal(t, 1, s.Len())
}

func TestSurfaceInteractivePopHonorsGate(t *testing.T) {
	s := NewSurface("main", WithClock(clockwork.NewFakeClock()))
	s.SetStack([]router.Screen{NewScreen("root"), NewScreen("a")}, navigation.NotAnimated, nil)

	assert.False(t, s.InteractivePop())
	assert.Equal(t, 2, s.Len())

	s.SetInteractivePopEnabled(true)
	assert.True(t, s.InteractivePop())
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.InteractivePop())
}

func TestSurfaceSystemPop(t *testing.T) {
	s := NewSurface("main", WithClock(clockwork.NewFakeClock()))
	seen := observe(s)
	s.SetStack([]router.Screen{NewScreen("root"), NewScreen("a"), NewScreen("b")}, navigation.NotAnimated, nil)

	assert.Equal(t, 2, s.SystemPop(5))
	assert.Equal(t, []string{"root"}, Names(s.VisibleStack()))
	require.Len(t, *seen, 2)
	assert.Equal(t, "root", (*seen)[1].top)
}

func TestSurfaceObserveCancel(t *testing.T) {
	s := NewSurface("main", WithClock(clockwork.NewFakeClock()))
	calls := 0
	sub := s.Observe(navigation.ObserverFunc(func(router.Screen, bool) { calls++ }))

	s.Push(NewScreen("root"), navigation.NotAnimated, nil)
	sub.Cancel()
	s.Push(NewScreen("a"), navigation.NotAnimated, nil)

	assert.Equal(t, 1, calls)
}

type dismissals []string

func (d *dismissals) DidDismiss(screen router.Screen) {
	*d = append(*d, NameOf(screen))
}

func TestPresenterInteractiveDismiss(t *testing.T) {
	p := NewPresenter()
	var d dismissals
	sheet := NewScreen("sheet")

	p.Present(sheet, router.ModalStylePageSheet, true, &d, nil)
	style, ok := p.Style(sheet)
	require.True(t, ok)
	assert.Equal(t, router.ModalStylePageSheet, style)

	assert.True(t, p.InteractiveDismiss(sheet))
	assert.False(t, p.InteractiveDismiss(sheet))
	assert.Equal(t, dismissals{"sheet"}, d)
	assert.Empty(t, p.Presented())
}

func TestContainerEmbedOnce(t *testing.T) {
	c := NewContainer()
	card := NewScreen("card")

	c.Embed(card)
	c.Embed(card)
	assert.Len(t, c.Embedded(), 1)

	c.Remove(card)
	assert.Empty(t, c.Embedded())
}
