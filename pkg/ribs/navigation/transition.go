package navigation

import "time"

// Operation is the navigation operation a transition animates.
type Operation int

const (
	OperationPush Operation = iota
	OperationPop
)

func (o Operation) String() string {
	if o == OperationPush {
		return "push"
	}
	return "pop"
}

// Animator is a custom push or pop animation supplied by the application.
type Animator interface {
	Duration() time.Duration
}

// AnimatorDuration is a fixed-duration Animator.
type AnimatorDuration time.Duration

func (d AnimatorDuration) Duration() time.Duration { return time.Duration(d) }

type transitionKind int

const (
	kindDefault transitionKind = iota
	kindNotAnimated
	kindCustom
)

// Transition selects how a navigation operation animates.
type Transition struct {
	kind transitionKind
	push Animator
	pop  Animator
}

var (
	// DefaultTransition uses the platform animation.
	DefaultTransition = Transition{kind: kindDefault}
	// NotAnimated applies the change without animation.
	NotAnimated = Transition{kind: kindNotAnimated}
)

// CustomTransition animates pushes and pops with the given animators. A nil
// animator falls back to the platform animation for that operation.
func CustomTransition(push, pop Animator) Transition {
	return Transition{kind: kindCustom, push: push, pop: pop}
}

// PushTransition customizes only the push animation.
func PushTransition(a Animator) Transition {
	return CustomTransition(a, nil)
}

// PopTransition customizes only the pop animation.
func PopTransition(a Animator) Transition {
	return CustomTransition(nil, a)
}

func (t Transition) Animated() bool {
	return t.kind != kindNotAnimated
}

// Animator returns the custom animator for op, or nil for the platform default.
func (t Transition) Animator(op Operation) Animator {
	if t.kind != kindCustom {
		return nil
	}
	if op == OperationPush {
		return t.push
	}
	return t.pop
}

func (t Transition) String() string {
	switch t.kind {
	case kindNotAnimated:
		return "notAnimated"
	case kindCustom:
		return "custom"
	default:
		return "default"
	}
}
