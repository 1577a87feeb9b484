package router

import (
	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
)

// Mode records how a router's screen was last shown.
type Mode int

const (
	ModeNone Mode = iota
	ModeAsRoot
	ModeModal
	ModeEmbedded
	ModePushed
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeAsRoot:
		return "asRoot"
	case ModeModal:
		return "modal"
	case ModeEmbedded:
		return "embedded"
	case ModePushed:
		return "pushed"
	default:
		return "unknown"
	}
}

// Presentation is one of AsRoot, Modal or Embedded. Each mode carries its own
// teardown, which Hide picks without the caller repeating the mode.
type Presentation interface {
	Mode() Mode
	present(owner *Router, screen Screen) teardown
}

type teardown func(animated bool, completion func())

type shown struct {
	mode     Mode
	screen   Screen
	teardown teardown
}

type asRoot struct {
	window     Window
	transition *WindowTransition
}

// AsRoot installs the screen as the window's root. It cannot be hidden.
func AsRoot(window Window, transition *WindowTransition) Presentation {
	return asRoot{window: window, transition: transition}
}

func (asRoot) Mode() Mode { return ModeAsRoot }

func (p asRoot) present(_ *Router, screen Screen) teardown {
	p.window.SetRoot(screen, p.transition)
	return nil
}

type modal struct {
	presenter  ModalPresenter
	style      ModalStyle
	animated   bool
	completion func()
}

// Modal presents the screen on presenter. The owning router is registered as
// the adaptive delegate so an out-of-band dismissal detaches the child.
func Modal(presenter ModalPresenter, style ModalStyle, animated bool, completion func()) Presentation {
	return modal{presenter: presenter, style: style, animated: animated, completion: completion}
}

func (modal) Mode() Mode { return ModeModal }

func (p modal) present(owner *Router, screen Screen) teardown {
	p.presenter.Present(screen, p.style, p.animated, owner, p.completion)
	return func(animated bool, completion func()) {
		p.presenter.Dismiss(screen, animated, completion)
	}
}

type embedded struct {
	container  Container
	completion func(Screen)
}

// Embedded adds the screen to container.
func Embedded(container Container, completion func(Screen)) Presentation {
	return embedded{container: container, completion: completion}
}

func (embedded) Mode() Mode { return ModeEmbedded }

func (p embedded) present(_ *Router, screen Screen) teardown {
	p.container.Embed(screen)
	if p.completion != nil {
		p.completion(screen)
	}
	return func(_ bool, completion func()) {
		p.container.Remove(screen)
		if completion != nil {
			completion()
		}
	}
}

// Show presents screen and remembers the teardown for Hide.
func (r *Router) Show(screen Screen, presentation Presentation) {
	if !internal.Assertf(screen != nil && presentation != nil, "show", "router %s: nothing to show", r.identifier) {
		return
	}

	r.presented = &shown{
		mode:     presentation.Mode(),
		screen:   screen,
		teardown: presentation.present(r, screen),
	}

	r.logger.Debug("Presented screen",
		"router", r.identifier,
		"screen", screen.ScreenID(),
		"mode", presentation.Mode().String(),
	)
}

// Presented returns the screen this router is showing and its mode.
func (r *Router) Presented() (Screen, Mode) {
	if r.presented == nil {
		return nil, ModeNone
	}
	return r.presented.screen, r.presented.mode
}

// Hide tears down whatever Show presented, using the remembered mode.
// completion is always invoked, even when there is nothing to hide.
func (r *Router) Hide(animated bool, completion func()) {
	p := r.presented
	if p == nil {
		internal.AssertionFailure("hide", "router %s: attempt to dismiss a screen that was never presented", r.identifier)
		if completion != nil {
			completion()
		}
		return
	}

	if p.mode == ModeAsRoot {
		internal.AssertionFailure("hide", "router %s: attempt to dismiss a screen presented as window root", r.identifier)
		if completion != nil {
			completion()
		}
		return
	}

	r.presented = nil
	r.logger.Debug("Dismissing screen",
		"router", r.identifier,
		"screen", p.screen.ScreenID(),
		"mode", p.mode.String(),
	)
	p.teardown(animated, completion)
}

// ShowAttached attaches child and shows its screen.
func (r *Router) ShowAttached(child Routing, presentation Presentation) {
	if child == nil || presentation == nil {
		return
	}
	if !internal.Assertf(child.Screen() != nil, "show", "router %s has no screen to show", child.RouteIdentifier()) {
		return
	}

	r.AttachChild(child)
	if !r.Contains(child) {
		return
	}
	child.base().mode = presentation.Mode()
	r.Show(child.Screen(), presentation)
}

// HideDetached detaches the current child and hides the presented screen.
func (r *Router) HideDetached(animated bool, completion func()) {
	r.DetachCurrentChild()
	r.Hide(animated, completion)
}

// DidDismiss handles a modal dismissal the platform performed on its own:
// the child owning screen is detached and the presentation is forgotten.
func (r *Router) DidDismiss(screen Screen) {
	if r.presented != nil && SameScreen(r.presented.screen, screen) {
		r.presented = nil
	}

	for i := len(r.children) - 1; i >= 0; i-- {
		child := r.children[i]
		if SameScreen(child.Screen(), screen) {
			r.logger.Debug("Modal dismissed by platform",
				"router", r.identifier,
				"child", child.RouteIdentifier(),
			)
			child.base().mode = ModeNone
			r.DetachChild(child)
			return
		}
	}
}

// Launch shows root with presentation, loads it and activates its tree.
func Launch(root Routing, presentation Presentation) {
	if root == nil {
		return
	}
	b := root.base()
	if !internal.Assertf(!b.attached, "launch", "router %s is attached and cannot be launched", b.identifier) {
		return
	}

	if presentation != nil && b.screen != nil {
		b.mode = presentation.Mode()
		b.Show(b.screen, presentation)
	}
	run(b.hooks.attached)
	b.Load()
	b.Activate()
}
