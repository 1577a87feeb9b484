package router

import "time"

// Screen is an opaque presentable handle supplied by the platform layer.
// Two screens are the same screen when their IDs are equal.
type Screen interface {
	ScreenID() string
}

// SameScreen reports whether a and b refer to the same screen.
func SameScreen(a, b Screen) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ScreenID() == b.ScreenID()
}

// IndexOfScreen returns the index of s in stack, or -1.
func IndexOfScreen(stack []Screen, s Screen) int {
	for i, candidate := range stack {
		if SameScreen(candidate, s) {
			return i
		}
	}
	return -1
}

// ContainsScreen reports whether s is part of stack.
func ContainsScreen(stack []Screen, s Screen) bool {
	return IndexOfScreen(stack, s) >= 0
}

// Window hosts the root screen of an application.
type Window interface {
	SetRoot(screen Screen, transition *WindowTransition)
}

// ModalPresenter presents screens modally on top of itself.
type ModalPresenter interface {
	Present(screen Screen, style ModalStyle, animated bool, delegate AdaptiveDelegate, completion func())
	Dismiss(screen Screen, animated bool, completion func())
}

// AdaptiveDelegate is told when the platform dismisses a modal screen on its
// own, for example when the user drags a sheet away.
type AdaptiveDelegate interface {
	DidDismiss(screen Screen)
}

// Container embeds child screens into a region of its own screen.
type Container interface {
	Embed(screen Screen)
	Remove(screen Screen)
}

// ModalStyle selects how a modal screen covers its presenter.
type ModalStyle int

const (
	ModalStyleAutomatic ModalStyle = iota
	ModalStyleFullScreen
	ModalStylePageSheet
	ModalStyleFormSheet
	ModalStyleOverFullScreen
)

func (s ModalStyle) String() string {
	switch s {
	case ModalStyleAutomatic:
		return "automatic"
	case ModalStyleFullScreen:
		return "fullScreen"
	case ModalStylePageSheet:
		return "pageSheet"
	case ModalStyleFormSheet:
		return "formSheet"
	case ModalStyleOverFullScreen:
		return "overFullScreen"
	default:
		return "unknown"
	}
}

// TransitionStyle is the animation used when a window swaps its root screen.
type TransitionStyle int

const (
	TransitionFade TransitionStyle = iota
	TransitionToTop
	TransitionToBottom
	TransitionToLeft
	TransitionToRight
)

// TimingFunction is the easing curve of a window transition.
type TimingFunction int

const (
	TimingLinear TimingFunction = iota
	TimingEaseIn
	TimingEaseOut
	TimingEaseInOut
)

// WindowTransition describes how a window animates to a new root screen.
type WindowTransition struct {
	Duration time.Duration
	Style    TransitionStyle // Default: TransitionFade
	Timing   TimingFunction  // Default: TimingLinear
}
