// Package navsim replays navigation scenarios against a flow router running
// on the in-memory platform and reports how the router tree followed the
// visible stack after every step.
package navsim

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Op names a scenario step.
type Op string

const (
	OpPush          Op = "push"
	OpPop           Op = "pop"
	OpPopTo         Op = "pop_to"
	OpPopModule     Op = "pop_module"
	OpPopToRoot     Op = "pop_to_root"
	OpReplaceLast   Op = "replace_last"
	OpReplaceModule Op = "replace_module"
	OpGesturePop    Op = "gesture_pop"
	OpSystemPop     Op = "system_pop"
	OpSettle        Op = "settle"
	OpWait          Op = "wait"
)

var knownOps = map[Op]bool{
	OpPush: true, OpPop: true, OpPopTo: true, OpPopModule: true, OpPopToRoot: true,
	OpReplaceLast: true, OpReplaceModule: true, OpGesturePop: true, OpSystemPop: true,
	OpSettle: true, OpWait: true,
}

// Scenario is a scripted sequence of navigation operations.
type Scenario struct {
	Name  string `toml:"name"`
	Root  string `toml:"root"`  // Identifier of the first pushed child
	Steps []Step `toml:"step"`
}

// Step is one operation of a scenario.
type Step struct {
	Op       Op     `toml:"op"`
	ID       string `toml:"id"`       // Route identifier the operation targets or pushes
	Screen   string `toml:"screen"`   // Screen name for pushes; defaults to ID
	With     string `toml:"with"`     // Replacement identifier for replace_module
	Animated bool   `toml:"animated"`
	Count    int    `toml:"count"`    // Screens removed by system_pop
	Duration string `toml:"duration"` // Clock advance for wait, e.g. "200ms"

	ExpectVisible  []string `toml:"expect_visible"`
	ExpectAttached []string `toml:"expect_attached"`
}

func (s Step) screenName() string {
	if s.Screen != "" {
		return s.Screen
	}
	return s.ID
}

func (s Step) duration() (time.Duration, error) {
	if s.Duration == "" {
		return 0, nil
	}
	return time.ParseDuration(s.Duration)
}

var (
	ErrNoRoot    = errors.New("scenario has no root")
	ErrUnknownOp = errors.New("unknown operation")
	ErrMissingID = errors.New("operation needs an id")
)

// StepError reports a step that could not be run or whose expectations failed.
type StepError struct {
	Index int
	Op    Op
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("navsim: step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ParseScenario decodes a TOML scenario and validates its steps.
func ParseScenario(data string) (*Scenario, error) {
	var scenario Scenario
	if _, err := toml.Decode(data, &scenario); err != nil {
		return nil, fmt.Errorf("navsim: parse scenario: %w", err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// LoadScenario reads and validates a TOML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	var scenario Scenario
	if _, err := toml.DecodeFile(path, &scenario); err != nil {
		return nil, fmt.Errorf("navsim: load scenario %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Root == "" {
		return ErrNoRoot
	}
	for i, step := range s.Steps {
		if !knownOps[step.Op] {
			return &StepError{Index: i + 1, Op: step.Op, Err: ErrUnknownOp}
		}
		switch step.Op {
		case OpPush, OpPopTo, OpPopModule, OpReplaceLast, OpReplaceModule:
			if step.ID == "" {
				return &StepError{Index: i + 1, Op: step.Op, Err: ErrMissingID}
			}
		}
		if step.Op == OpReplaceModule && step.With == "" {
			return &StepError{Index: i + 1, Op: step.Op, Err: errors.New("replace_module needs a with identifier")}
		}
		if _, err := step.duration(); err != nil {
			return &StepError{Index: i + 1, Op: step.Op, Err: err}
		}
	}
	return nil
}
