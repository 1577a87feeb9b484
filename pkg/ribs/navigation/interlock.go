package navigation

// gestureInterlock keeps the interactive back gesture off while any push or
// replace is in flight, so a user-driven pop cannot race a screen that is
// still being installed.
type gestureInterlock struct {
	surface  Surface
	inFlight int
	depth    int
}

// begin marks a presentation in flight and returns the completion to hand to
// the surface. The wrapper ends the presentation once, then runs completion.
func (g *gestureInterlock) begin(completion func()) func() {
	g.inFlight++
	g.apply()

	ended := false
	return func() {
		if !ended {
			ended = true
			g.inFlight--
			g.apply()
		}
		if completion != nil {
			completion()
		}
	}
}

// didShow runs when the platform reports a new top screen.
func (g *gestureInterlock) didShow(depth int) {
	g.depth = depth
	g.apply()
}

func (g *gestureInterlock) allowed() bool {
	return g.depth > 1 && g.inFlight == 0
}

func (g *gestureInterlock) apply() {
	g.surface.SetInteractivePopEnabled(g.allowed())
}
