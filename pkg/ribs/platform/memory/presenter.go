package memory

import (
	"log/slog"

	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
	"github.com/BrandonKowalski/ribs/pkg/ribs/router"
)

// Window records the root screen installed by AsRoot presentations.
type Window struct {
	root        router.Screen
	transitions []*router.WindowTransition
}

func NewWindow() *Window {
	return &Window{}
}

func (w *Window) SetRoot(screen router.Screen, transition *router.WindowTransition) {
	w.root = screen
	w.transitions = append(w.transitions, transition)
}

func (w *Window) Root() router.Screen { return w.root }

// RootChanges returns how many times a root screen was installed.
func (w *Window) RootChanges() int { return len(w.transitions) }

// LastTransition returns the transition of the most recent root change.
func (w *Window) LastTransition() *router.WindowTransition {
	if len(w.transitions) == 0 {
		return nil
	}
	return w.transitions[len(w.transitions)-1]
}

type modal struct {
	screen   router.Screen
	style    router.ModalStyle
	delegate router.AdaptiveDelegate
}

// Presenter is an in-memory modal presenter. Completions run synchronously.
type Presenter struct {
	logger *slog.Logger
	modals []modal
}

func NewPresenter() *Presenter {
	return &Presenter{logger: internal.GetInternalLogger()}
}

func (p *Presenter) Present(screen router.Screen, style router.ModalStyle, animated bool, delegate router.AdaptiveDelegate, completion func()) {
	p.modals = append(p.modals, modal{screen: screen, style: style, delegate: delegate})
	p.logger.Debug("Presented modal", "screen", NameOf(screen), "style", style.String(), "animated", animated)
	if completion != nil {
		completion()
	}
}

func (p *Presenter) Dismiss(screen router.Screen, animated bool, completion func()) {
	p.remove(screen)
	p.logger.Debug("Dismissed modal", "screen", NameOf(screen), "animated", animated)
	if completion != nil {
		completion()
	}
}

// InteractiveDismiss simulates the user swiping a modal away. The delegate
// given at presentation time is told about it.
func (p *Presenter) InteractiveDismiss(screen router.Screen) bool {
	m, ok := p.remove(screen)
	if !ok {
		return false
	}
	p.logger.Debug("Modal dismissed interactively", "screen", NameOf(screen))
	if m.delegate != nil {
		m.delegate.DidDismiss(screen)
	}
	return true
}

// Presented returns the modal screens, oldest first.
func (p *Presenter) Presented() []router.Screen {
	out := make([]router.Screen, 0, len(p.modals))
	for _, m := range p.modals {
		out = append(out, m.screen)
	}
	return out
}

// Style returns the style screen was presented with.
func (p *Presenter) Style(screen router.Screen) (router.ModalStyle, bool) {
	for _, m := range p.modals {
		if router.SameScreen(m.screen, screen) {
			return m.style, true
		}
	}
	return 0, false
}

func (p *Presenter) remove(screen router.Screen) (modal, bool) {
	for i := len(p.modals) - 1; i >= 0; i-- {
		if router.SameScreen(p.modals[i].screen, screen) {
			m := p.modals[i]
			p.modals = append(p.modals[:i], p.modals[i+1:]...)
			return m, true
		}
	}
	return modal{}, false
}

// Container is an in-memory container for embedded screens.
type Container struct {
	embedded []router.Screen
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Embed(screen router.Screen) {
	if router.ContainsScreen(c.embedded, screen) {
		return
	}
	c.embedded = append(c.embedded, screen)
}

func (c *Container) Remove(screen router.Screen) {
	if i := router.IndexOfScreen(c.embedded, screen); i >= 0 {
		c.embedded = append(c.embedded[:i], c.embedded[i+1:]...)
	}
}

func (c *Container) Embedded() []router.Screen {
	out := make([]router.Screen, len(c.embedded))
	copy(out, c.embedded)
	return out
}
