// Package router provides the router tree that ribs are composed into.
//
// A rib pairs a Router, which owns child ribs, with an Interactable, which
// holds business logic and is only active while its whole ancestry is active.
// Application routers embed *Router:
//
//	type DetailRouter struct {
//	    *router.Router
//	}
//
//	func NewDetailRouter(screen router.Screen) *DetailRouter {
//	    interactor := &DetailInteractor{}
//	    interactor.Interactor = router.NewInteractor(interactor)
//	    return &DetailRouter{Router: router.New(interactor, router.WithScreen(screen))}
//	}
//
// # Attach and Detach
//
// AttachChild inserts a child, loads it and activates it when the parent is
// active. A router may have one parent at a time; attaching it twice is a
// programmer error. DetachChild tears a subtree down children first, so no
// interactor below a detached router stays active.
//
// # Presentation
//
// Show presents a screen AsRoot, Modal or Embedded and remembers the mode on
// the presenting router, so Hide can pick the matching teardown:
//
//	parent.ShowAttached(child, router.Modal(presenter, router.ModalStyleFormSheet, true, nil))
//	// later
//	parent.HideDetached(true, nil)
//
// Pushed presentation is owned by the navigation package.
//
// # Programmer Errors
//
// Misuse such as double attach or hiding a screen that was never shown
// panics when strict assertions are enabled (ENVIRONMENT=DEV or
// RIBS_STRICT_ASSERTIONS=1) and is logged and ignored otherwise.
package router
