package search

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/rectfree/rectfree/pkg/errors"
	"github.com/rectfree/rectfree/pkg/grid"
	"github.com/rectfree/rectfree/pkg/observability"
	"github.com/rectfree/rectfree/pkg/repair"
	"github.com/rectfree/rectfree/pkg/scan"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultColors is the palette size used when none is configured.
	DefaultColors = 4

	// capFactor scales the default iteration cap: 1000 × max(M,N)².
	capFactor = 1000
)

// DefaultCap returns the default iteration cap for a grid shape,
// 1000 × max(rows, cols)².
func DefaultCap(rows, cols int) int {
	side := max(rows, cols)
	return capFactor * side * side
}

// =============================================================================
// State
// =============================================================================

// State identifies a phase of the search state machine. Converged and
// Exhausted are the terminal states reported in [Result].
type State int

// Search states.
const (
	StateInitialized State = iota
	StateScanning
	StateRepairing
	StateConverged
	StateExhausted
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateScanning:
		return "scanning"
	case StateRepairing:
		return "repairing"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	return s == StateConverged || s == StateExhausted
}

// =============================================================================
// Options
// =============================================================================

// Options configures a search run.
type Options struct {
	// Rows and Cols are the grid dimensions, both at least 2.
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// Colors is the palette size K, at least 2. Defaults to 4.
	Colors int `json:"colors,omitempty"`

	// MaxIterations caps the number of scan/repair cycles before the
	// run is declared exhausted. Defaults to [DefaultCap] for the shape.
	MaxIterations int `json:"max_iterations,omitempty"`

	// Seed makes the run deterministic. Zero draws a time-based seed;
	// the seed actually used is reported in the result.
	Seed uint64 `json:"seed,omitempty"`

	// Strategy names the repair strategy. Defaults to "sequential".
	Strategy string `json:"strategy,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger `json:"-"`
	Observer Observer    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Square returns options for an N×N grid with default palette and cap.
func Square(n int) Options {
	return Options{Rows: n, Cols: n}
}

// ValidateAndSetDefaults checks the configuration and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateShape(o.Rows, o.Cols); err != nil {
		return err
	}
	if o.Colors == 0 {
		o.Colors = DefaultColors
	}
	if err := errors.ValidateColors(o.Colors); err != nil {
		return err
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultCap(o.Rows, o.Cols)
	}
	if err := errors.ValidateCap(o.MaxIterations); err != nil {
		return err
	}
	if o.Strategy == "" {
		o.Strategy = repair.DefaultName
	}
	if _, ok := repair.ByName(o.Strategy); !ok {
		return errors.New(errors.ErrCodeInvalidStrategy, "unknown repair strategy %q", o.Strategy)
	}
	if o.Seed == 0 {
		o.Seed = uint64(time.Now().UnixNano())
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result is the final report of a search run.
type Result struct {
	// Status is the terminal state: StateConverged or StateExhausted.
	Status State

	// Iterations is the number of repair passes executed.
	Iterations int

	// Grid is the final grid. Ownership transfers to the caller.
	Grid *grid.Grid

	// Violations is the violation list for the final grid.
	// Empty iff Status is StateConverged.
	Violations []scan.Violation

	// Best is the minimum violation count observed during the run.
	Best int

	// Seed is the seed the run actually used.
	Seed uint64

	// RunID uniquely names this run, for frame logs and reports.
	RunID string

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Converged reports whether the final grid is rectangle-free.
func (r *Result) Converged() bool {
	return r.Status == StateConverged
}

// =============================================================================
// Runner
// =============================================================================

// Runner executes search runs for a fixed configuration.
type Runner struct {
	opts     Options
	strategy repair.Strategy
}

// New creates a runner, validating the options and applying defaults.
// Configuration problems surface here, before any search starts.
func New(opts Options) (*Runner, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	strategy, _ := repair.ByName(opts.Strategy)
	return &Runner{opts: opts, strategy: strategy}, nil
}

// Options returns the validated options the runner was built with.
func (r *Runner) Options() Options {
	return r.opts
}

// Run executes the search loop until convergence, exhaustion, or ctx
// cancellation. Exhaustion is a normal outcome reported via the result
// status; only cancellation and internal failures return an error.
//
// The loop alternates strictly: every repair pass operates on the
// violation list from the immediately preceding scan. The violation
// list in the result always matches the returned grid, so an exhausted
// run ends with one extra scan after the last repair.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	opts := r.opts
	logger := opts.Logger
	start := time.Now()
	runID := uuid.NewString()

	observability.Search().OnSearchStart(ctx, opts.Rows, opts.Cols, opts.Colors)
	logger.Debug("search starting",
		"run", runID,
		"rows", opts.Rows, "cols", opts.Cols,
		"colors", opts.Colors,
		"seed", opts.Seed,
		"strategy", opts.Strategy,
		"cap", opts.MaxIterations)

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))

	g := grid.New(opts.Rows, opts.Cols, opts.Colors)
	g.Fill(rng)

	violations := scan.Detect(g)
	best := len(violations)
	r.emitProgress(ctx, 0, best)

	iteration := 0
	for len(violations) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r.emitFrame(Frame{Iteration: iteration, Grid: g.Snapshot(), Violations: violations, Best: best})

		r.strategy.Repair(g, violations, rng)
		iteration++

		if iteration >= opts.MaxIterations {
			// Rescan so the reported violations match the final grid; the
			// last repair pass may have fixed everything.
			violations = scan.Detect(g)
			if len(violations) < best {
				best = len(violations)
			}
			status := StateExhausted
			if len(violations) == 0 {
				status = StateConverged
			}
			return r.finish(ctx, status, g, violations, iteration, best, runID, start), nil
		}

		violations = scan.Detect(g)
		if len(violations) < best {
			best = len(violations)
			r.emitProgress(ctx, iteration, best)
		}
	}

	return r.finish(ctx, StateConverged, g, violations, iteration, best, runID, start), nil
}

func (r *Runner) finish(ctx context.Context, status State, g *grid.Grid, violations []scan.Violation, iteration, best int, runID string, start time.Time) *Result {
	r.emitFrame(Frame{Iteration: iteration, Grid: g.Snapshot(), Violations: violations, Best: best})

	elapsed := time.Since(start)
	observability.Search().OnSearchComplete(ctx, status.String(), iteration, elapsed)
	r.opts.Logger.Debug("search finished",
		"run", runID,
		"status", status,
		"iterations", iteration,
		"violations", len(violations),
		"elapsed", elapsed.Round(time.Millisecond))

	return &Result{
		Status:     status,
		Iterations: iteration,
		Grid:       g,
		Violations: violations,
		Best:       best,
		Seed:       r.opts.Seed,
		RunID:      runID,
		Elapsed:    elapsed,
	}
}

func (r *Runner) emitFrame(f Frame) {
	if r.opts.Observer != nil {
		r.opts.Observer.OnFrame(f)
	}
}

func (r *Runner) emitProgress(ctx context.Context, iteration, violations int) {
	observability.Search().OnProgress(ctx, iteration, violations)
	r.opts.Logger.Debug("progress", "iteration", iteration, "violations", violations)
	if r.opts.Observer != nil {
		r.opts.Observer.OnProgress(iteration, violations)
	}
}
