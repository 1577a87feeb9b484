package router

import (
	"testing"

	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
)

func strictAssertions(t *testing.T, enabled bool) {
	t.Helper()
	previous := internal.SetStrictAssertions(enabled)
	t.Cleanup(func() { internal.SetStrictAssertions(previous) })
}

type testScreen string

func (s testScreen) ScreenID() string { return string(s) }

type recorder struct {
	events []string
}

func (r *recorder) add(event string) { r.events = append(r.events, event) }

type recordingDelegate struct {
	name string
	rec  *recorder
}

func (d *recordingDelegate) DidBecomeActive()  { d.rec.add("active:" + d.name) }
func (d *recordingDelegate) WillResignActive() { d.rec.add("resign:" + d.name) }

func newNamed(name string, rec *recorder) *Router {
	var delegate InteractorDelegate
	if rec != nil {
		delegate = &recordingDelegate{name: name, rec: rec}
	}
	return New(NewInteractor(delegate), WithRouteIdentifier(name), WithScreen(testScreen(name)))
}
