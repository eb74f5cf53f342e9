package repair

import (
	"math/rand/v2"

	"github.com/rectfree/rectfree/pkg/grid"
	"github.com/rectfree/rectfree/pkg/scan"
)

// Strategy names accepted by [ByName] and the CLI.
const (
	NameSequential = "sequential"
	NameSnapshot   = "snapshot"
)

// DefaultName is the strategy used when none is configured.
const DefaultName = NameSequential

// Strategy applies one repair pass to a grid. The violation list must
// come from a scan of the grid as passed in; implementations mutate the
// grid in place. The random source is the only source of nondeterminism:
// equal (grid, violations, rng state) inputs produce equal results.
type Strategy interface {
	// Name returns the registered strategy name.
	Name() string

	// Repair processes every violation in list order, recoloring one
	// corner per violation.
	Repair(g *grid.Grid, violations []scan.Violation, rng *rand.Rand)
}

// ByName returns the strategy registered under name, or false if the
// name is unknown.
func ByName(name string) (Strategy, bool) {
	switch name {
	case NameSequential:
		return Sequential{}, true
	case NameSnapshot:
		return Snapshot{}, true
	}
	return nil, false
}

// Names returns the registered strategy names.
func Names() []string {
	return []string{NameSequential, NameSnapshot}
}

// Sequential repairs violations one at a time against the shared grid.
// When two violations in the same pass share a corner cell, the later
// write in scan order overwrites the earlier one, so an earlier repair
// can be silently undone. This order-dependent interaction matches the
// original algorithm.
type Sequential struct{}

// Name returns "sequential".
func (Sequential) Name() string { return NameSequential }

// Repair recolors one uniformly chosen corner of each violation with a
// uniformly chosen color different from the violation's pre-pass shared
// corner color.
func (Sequential) Repair(g *grid.Grid, violations []scan.Violation, rng *rand.Rand) {
	// Shared corner colors are fixed by the scan that produced the
	// list, not by mid-pass writes.
	before := g.Snapshot()
	for _, v := range violations {
		shared := before.At(v.Row, v.Col)
		corner := v.Corners()[rng.IntN(4)]
		g.Set(corner[0], corner[1], replacement(rng, g.Colors(), shared))
	}
}

// Snapshot draws every repair against the pre-pass grid and applies the
// writes in scan order with a first-write-wins policy: a cell already
// recolored in this pass keeps its new color, and later repairs that
// target it are dropped.
type Snapshot struct{}

// Name returns "snapshot".
func (Snapshot) Name() string { return NameSnapshot }

// Repair recolors one uniformly chosen corner of each violation with a
// uniformly chosen color different from the violation's pre-pass shared
// corner color, skipping cells already written in this pass.
func (Snapshot) Repair(g *grid.Grid, violations []scan.Violation, rng *rand.Rand) {
	before := g.Snapshot()
	written := make(map[[2]int]struct{}, len(violations))
	for _, v := range violations {
		shared := before.At(v.Row, v.Col)
		corner := v.Corners()[rng.IntN(4)]
		color := replacement(rng, g.Colors(), shared)
		if _, done := written[corner]; done {
			continue
		}
		written[corner] = struct{}{}
		g.Set(corner[0], corner[1], color)
	}
}

// replacement draws a color uniformly from the colors-1 palette entries
// other than exclude.
func replacement(rng *rand.Rand, colors, exclude int) int {
	c := rng.IntN(colors - 1)
	if c >= exclude {
		c++
	}
	return c
}
