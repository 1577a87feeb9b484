package internal

import (
	"fmt"

	"github.com/BrandonKowalski/ribs/pkg/ribs/constants"
	"go.uber.org/atomic"
)

// ProgrammerError describes misuse of the framework API: attaching a router
// twice, hiding something that was never shown, subscribing an uncommitted
// workflow and so on.
type ProgrammerError struct {
	Op  string // Operation that was misused (e.g., "attach", "hide")
	Msg string
}

func (e *ProgrammerError) Error() string {
	return fmt.Sprintf("ribs: %s: %s", e.Op, e.Msg)
}

var strict = atomic.NewBool(constants.IsStrictAssertions())

// SetStrictAssertions toggles whether programmer errors panic. It returns the
// previous setting so tests can restore it.
func SetStrictAssertions(enabled bool) bool {
	return strict.Swap(enabled)
}

// StrictAssertions reports whether programmer errors panic.
func StrictAssertions() bool {
	return strict.Load()
}

// AssertionFailure reports a programmer error. In strict mode it panics with a
// *ProgrammerError; otherwise it is logged and the caller degrades to a no-op.
func AssertionFailure(op, format string, args ...any) {
	err := &ProgrammerError{Op: op, Msg: fmt.Sprintf(format, args...)}
	if strict.Load() {
		panic(err)
	}
	GetInternalLogger().Error("Assertion failure", "op", op, "error", err.Msg)
}

// Assertf reports a programmer error when cond is false and returns cond.
func Assertf(cond bool, op, format string, args ...any) bool {
	if !cond {
		AssertionFailure(op, format, args...)
	}
	return cond
}
