package navsim

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/BrandonKowalski/ribs/pkg/ribs"
	"github.com/BrandonKowalski/ribs/pkg/ribs/navigation"
	"github.com/BrandonKowalski/ribs/pkg/ribs/platform/memory"
	"github.com/BrandonKowalski/ribs/pkg/ribs/router"
	"github.com/jonboulle/clockwork"
)

// Snapshot is the state after one step.
type Snapshot struct {
	Index          int
	Op             Op
	Target         string
	Visible        []string
	Attached       []string
	Released       []string
	GestureEnabled bool
	GestureIgnored bool
	Pending        int
}

// Report is the outcome of running a scenario.
type Report struct {
	Scenario  string
	Snapshots []Snapshot
}

// Released returns how many routers the platform removed over the whole run.
func (r *Report) Released() int {
	total := 0
	for _, s := range r.Snapshots {
		total += len(s.Released)
	}
	return total
}

// simulation is the flow router under test and its delegate.
type simulation struct {
	clock    *clockwork.FakeClock
	surface  *memory.Surface
	flow     *navigation.FlowRouter
	root     string
	released []string
}

func (s *simulation) RouteToInitial(flow *navigation.FlowRouter) {
	flow.PushAttached(newPage(s.root, s.root), navigation.NotAnimated, nil)
}

func (s *simulation) DidDetachChild(child router.Routing) {
	s.released = append(s.released, child.RouteIdentifier())
}

func newPage(identifier, screen string) *router.Router {
	return router.New(nil, router.WithRouteIdentifier(identifier), router.WithScreen(memory.NewScreen(screen)))
}

// Runner executes scenarios. Each run starts from a fresh flow router.
type Runner struct {
	logger *slog.Logger
}

type RunnerOption func(*Runner)

func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = ribs.GetLogger()
	}
	return r
}

// Run replays scenario. It stops at the first step whose expectations fail
// and returns the report up to and including that step.
func (r *Runner) Run(scenario *Scenario) (*Report, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	sim := &simulation{
		clock: clockwork.NewFakeClock(),
		root:  scenario.Root,
	}
	sim.surface = memory.NewSurface(scenario.Name, memory.WithClock(sim.clock))
	sim.flow = navigation.NewFlowRouter(nil, sim.surface, sim,
		router.WithRouteIdentifier("Flow"),
		router.WithLogger(r.logger),
	)
	router.Launch(sim.flow, router.AsRoot(memory.NewWindow(), nil))

	report := &Report{Scenario: scenario.Name}
	for i, step := range scenario.Steps {
		index := i + 1
		sim.released = nil

		ignored, err := r.apply(sim, step)
		if err != nil {
			return report, &StepError{Index: index, Op: step.Op, Err: err}
		}

		snapshot := Snapshot{
			Index:          index,
			Op:             step.Op,
			Target:         step.ID,
			Visible:        memory.Names(sim.surface.VisibleStack()),
			Attached:       identifiers(sim.flow),
			Released:       sim.released,
			GestureEnabled: sim.surface.InteractivePopEnabled(),
			GestureIgnored: ignored,
			Pending:        sim.surface.Pending(),
		}
		report.Snapshots = append(report.Snapshots, snapshot)

		r.logger.Debug("Scenario step",
			"scenario", scenario.Name,
			"step", index,
			"op", string(step.Op),
			"visible", snapshot.Visible,
		)

		if err := check(step, snapshot); err != nil {
			return report, &StepError{Index: index, Op: step.Op, Err: err}
		}
	}

	return report, nil
}

func (r *Runner) apply(sim *simulation, step Step) (ignored bool, err error) {
	transition := navigation.NotAnimated
	if step.Animated {
		transition = navigation.DefaultTransition
	}

	switch step.Op {
	case OpPush:
		sim.flow.PushAttached(newPage(step.ID, step.screenName()), transition, nil)
	case OpPop:
		sim.flow.PopDetached(step.Animated, nil)
	case OpPopTo:
		sim.flow.PopToIdentifier(step.ID, step.Animated, nil)
	case OpPopModule:
		sim.flow.PopModule(step.ID, step.Animated, nil)
	case OpPopToRoot:
		sim.flow.PopToRoot(step.Animated, nil)
	case OpReplaceLast:
		sim.flow.ReplaceLast(newPage(step.ID, step.screenName()), transition, nil)
	case OpReplaceModule:
		sim.flow.ReplaceModule(step.ID, newPage(step.With, step.With), transition, nil)
	case OpGesturePop:
		ignored = !sim.surface.InteractivePop()
	case OpSystemPop:
		count := step.Count
		if count <= 0 {
			count = 1
		}
		sim.surface.SystemPop(count)
	case OpSettle:
		sim.surface.Settle()
	case OpWait:
		d, err := step.duration()
		if err != nil {
			return false, err
		}
		sim.clock.Advance(d)
		sim.surface.Tick()
	default:
		return false, ErrUnknownOp
	}
	return ignored, nil
}

func identifiers(r router.Routing) []string {
	children := r.Children()
	out := make([]string, 0, len(children))
	for _, child := range children {
		out = append(out, child.RouteIdentifier())
	}
	return out
}

func check(step Step, snapshot Snapshot) error {
	if step.ExpectVisible != nil && !slices.Equal(step.ExpectVisible, snapshot.Visible) {
		return fmt.Errorf("visible stack %v, expected %v", snapshot.Visible, step.ExpectVisible)
	}
	if step.ExpectAttached != nil && !slices.Equal(step.ExpectAttached, snapshot.Attached) {
		return fmt.Errorf("attached children %v, expected %v", snapshot.Attached, step.ExpectAttached)
	}
	return nil
}
