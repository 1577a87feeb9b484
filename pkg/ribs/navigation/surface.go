package navigation

import (
	"github.com/BrandonKowalski/ribs/pkg/ribs/lifecycle"
	"github.com/BrandonKowalski/ribs/pkg/ribs/router"
)

// Surface is the platform navigation container whose visible stack the
// reconciler follows.
//
// Commands update VisibleStack immediately; the transition settles later and
// is reported to observers through DidShow. The platform may also change the
// stack on its own (back gestures, system pops) and reports those the same way.
type Surface interface {
	router.Screen

	VisibleStack() []router.Screen
	Push(screen router.Screen, transition Transition, completion func())
	Pop(transition Transition, completion func())
	PopTo(screen router.Screen, transition Transition, completion func())
	SetStack(screens []router.Screen, transition Transition, completion func())

	// SetInteractivePopEnabled gates the platform's interactive back gesture.
	SetInteractivePopEnabled(enabled bool)
	Observe(observer Observer) lifecycle.Cancellable
}

// Observer is told whenever a transition on a surface settles.
type Observer interface {
	DidShow(top router.Screen, animated bool)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(top router.Screen, animated bool)

func (f ObserverFunc) DidShow(top router.Screen, animated bool) { f(top, animated) }

// Navigator is a router that can place screens on a surface. Flow routers
// navigate directly; subflow routers navigate through their base.
type Navigator interface {
	Surface() Surface
	Transition() Transition
	Push(screen router.Screen, transition Transition, completion func())
	Pop(animated bool, completion func())
	// Replace swaps the whole visible stack as a presentation.
	Replace(screens []router.Screen, transition Transition, completion func())
}
