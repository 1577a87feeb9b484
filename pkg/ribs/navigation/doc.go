// Package navigation keeps a router subtree in step with a platform
// navigation stack.
//
// A FlowRouter owns a Surface. Children pushed through it are attached in the
// router tree and their screens are placed on the surface. Because the
// surface can change without the router asking (back gestures, system pops),
// the flow router listens for settled transitions and detaches every child
// whose screen is gone. Its delegate hears about those children through
// DidDetachChild.
//
// # Basic Usage
//
//	type checkoutFlow struct{ cart router.Routing }
//
//	func (c *checkoutFlow) RouteToInitial(flow *navigation.FlowRouter) {
//	    flow.PushAttached(c.cart, navigation.NotAnimated, nil)
//	}
//
//	func (c *checkoutFlow) DidDetachChild(child router.Routing) {}
//
//	flow := navigation.NewFlowRouter(nil, surface, &checkoutFlow{cart: cart})
//	router.Launch(flow, router.AsRoot(window, nil))
//
// # Identifier Targeting
//
// PopToIdentifier, PopModule, PopSubflow and ReplaceModule look children up by
// route identifier. When several children share an identifier the most
// recently attached one wins. Unknown identifiers are ignored.
//
// # Subflows
//
// A SubflowRouter pushes a journey of several screens onto its base
// navigator's surface and remembers which screens belong to it, so
// PopSubflow can remove the journey as a unit. When the platform removes the
// last of its screens its delegate is told through DidBecomeEmpty and the
// owning flow detaches it.
//
// # Interactive Pops
//
// While any push or replace is in flight the surface's interactive pop
// gesture is disabled. It comes back once every one of them has settled and
// more than one screen is left.
package navigation
