package navigation_test

import (
	"testing"

	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
	"github.com/BrandonKowalski/ribs/pkg/ribs/navigation"
	"github.com/BrandonKowalski/ribs/pkg/ribs/platform/memory"
	"github.com/BrandonKowalski/ribs/pkg/ribs/router"
	"github.com/jonboulle/clockwork"
)

func strictAssertions(t *testing.T, enabled bool) {
	t.Helper()
	previous := internal.SetStrictAssertions(enabled)
	t.Cleanup(func() { internal.SetStrictAssertions(previous) })
}

type flowDelegate struct {
	initial  func(flow *navigation.FlowRouter)
	detached []string
}

func (d *flowDelegate) RouteToInitial(flow *navigation.FlowRouter) {
	if d.initial != nil {
		d.initial(flow)
	}
}

func (d *flowDelegate) DidDetachChild(child router.Routing) {
	d.detached = append(d.detached, child.RouteIdentifier())
}

type subflowDelegate struct {
	detached []string
	emptied  int
}

func (d *subflowDelegate) DidDetachChild(child router.Routing) {
	d.detached = append(d.detached, child.RouteIdentifier())
}

func (d *subflowDelegate) DidBecomeEmpty(*navigation.SubflowRouter) {
	d.emptied++
}

func screenChild(name string) *router.Router {
	return router.New(nil, router.WithRouteIdentifier(name), router.WithScreen(memory.NewScreen(name)))
}

func identifiers(r router.Routing) []string {
	var out []string
	for _, child := range r.Children() {
		out = append(out, child.RouteIdentifier())
	}
	return out
}

type harness struct {
	clock    *clockwork.FakeClock
	surface  *memory.Surface
	delegate *flowDelegate
	flow     *navigation.FlowRouter
	root     *router.Router
	detaches int
}

// newHarness launches a flow router whose initial screen is a child named rootName.
func newHarness(t *testing.T, rootName string) *harness {
	t.Helper()

	h := &harness{
		clock: clockwork.NewFakeClock(),
		root:  screenChild(rootName),
	}
	h.surface = memory.NewSurface("nav", memory.WithClock(h.clock))
	h.delegate = &flowDelegate{
		initial: func(flow *navigation.FlowRouter) {
			flow.PushAttached(h.root, navigation.NotAnimated, nil)
		},
	}
	h.flow = navigation.NewFlowRouter(nil, h.surface, h.delegate, router.WithRouteIdentifier("Flow"))
	h.flow.ObserveDetach(func(router.Routing) { h.detaches++ })

	router.Launch(h.flow, router.AsRoot(memory.NewWindow(), nil))
	return h
}

func (h *harness) push(names ...string) []*router.Router {
	var out []*router.Router
	for _, name := range names {
		child := screenChild(name)
		h.flow.PushAttached(child, navigation.NotAnimated, nil)
		out = append(out, child)
	}
	return out
}

func (h *harness) visible() []string {
	return memory.Names(h.surface.VisibleStack())
}
