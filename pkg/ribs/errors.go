package ribs

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/ribs/pkg/ribs/internal"
	"github.com/BrandonKowalski/ribs/pkg/ribs/workflow"
)

// Sentinel errors for common conditions.
var (
	// ErrCancelled is reported by a workflow that was cancelled before it finished.
	ErrCancelled = workflow.ErrCancelled

	// ErrNotCommitted describes subscribing to a workflow before committing any step.
	ErrNotCommitted = workflow.ErrNotCommitted
)

// ProgrammerError describes misuse of the framework: attaching a router
// twice, hiding a screen that was never shown and the like. With strict
// assertions enabled the framework panics with one; otherwise it logs the
// problem and ignores the call.
type ProgrammerError = internal.ProgrammerError

// IsProgrammerError checks if an error, or a recovered panic value, is a programmer error.
func IsProgrammerError(v any) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var programmerErr *ProgrammerError
	return errors.As(err, &programmerErr)
}

// ConfigError reports a configuration file that could not be read or parsed.
type ConfigError struct {
	Op  string // Operation that failed (e.g., "load_options")
	Err error  // Underlying error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ribs: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ribs: %s", e.Op)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new configuration error.
func NewConfigError(op string, err error) *ConfigError {
	return &ConfigError{Op: op, Err: err}
}

// IsConfigError checks if an error is a configuration error.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsCancelled checks if an error indicates a cancelled workflow.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
