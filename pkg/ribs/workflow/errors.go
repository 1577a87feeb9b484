package workflow

import "errors"

var (
	// ErrCancelled is reported by Workflow.Err after the workflow was cancelled.
	ErrCancelled = errors.New("workflow cancelled")
	// ErrNotCommitted describes subscribing to a workflow with no committed steps.
	ErrNotCommitted = errors.New("workflow has no committed steps")
)
