package repair

import (
	"math/rand/v2"
	"testing"

	"github.com/rectfree/rectfree/pkg/grid"
	"github.com/rectfree/rectfree/pkg/scan"
)

func newRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		s, ok := ByName(name)
		if !ok {
			t.Fatalf("ByName(%q) not found", name)
		}
		if s.Name() != name {
			t.Errorf("ByName(%q).Name() = %q", name, s.Name())
		}
	}
	if _, ok := ByName("greedy"); ok {
		t.Error("ByName should reject unknown names")
	}
}

func TestReplacementNeverReturnsExcluded(t *testing.T) {
	rng := newRng(1)
	for colors := 2; colors <= 6; colors++ {
		for exclude := 0; exclude < colors; exclude++ {
			seen := make(map[int]bool)
			for i := 0; i < 200; i++ {
				c := replacement(rng, colors, exclude)
				if c == exclude {
					t.Fatalf("replacement(colors=%d, exclude=%d) returned the excluded color", colors, exclude)
				}
				if c < 0 || c >= colors {
					t.Fatalf("replacement(colors=%d, exclude=%d) = %d out of range", colors, exclude, c)
				}
				seen[c] = true
			}
			if len(seen) != colors-1 {
				t.Errorf("replacement(colors=%d, exclude=%d) covered %d colors, want %d", colors, exclude, len(seen), colors-1)
			}
		}
	}
}

// TestRepairLocality replays the strategy's random draws against a
// generator with the same seed and checks that every processed
// violation's chosen corner ends up with a color different from the
// violation's pre-pass shared color.
func TestRepairLocality(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			strategy, _ := ByName(name)

			g := grid.New(6, 6, 2)
			g.Fill(newRng(11))
			before := g.Clone()
			violations := scan.Detect(g)
			if len(violations) == 0 {
				t.Fatal("test grid should contain violations")
			}

			strategy.Repair(g, violations, newRng(99))

			// Replay the same draw sequence: only corner cells of reported
			// violations may change, and every drawn color avoids the
			// violation's pre-pass shared color.
			corners := make(map[[2]int]bool)
			replay := newRng(99)
			for _, v := range violations {
				shared := before.At(v.Row, v.Col)
				corner := v.Corners()[replay.IntN(4)]
				color := replacement(replay, g.Colors(), shared)
				if color == shared {
					t.Fatalf("replacement returned shared color %d for %v", shared, v)
				}
				corners[corner] = true
			}

			for r := 0; r < g.Rows(); r++ {
				for c := 0; c < g.Cols(); c++ {
					if g.At(r, c) != before.At(r, c) && !corners[[2]int{r, c}] {
						t.Fatalf("cell (%d,%d) changed but is not a drawn corner", r, c)
					}
				}
			}
		})
	}
}

// TestSequentialMatchesReplay verifies the exact write sequence of the
// sequential strategy: one write per violation, in scanner order, each
// drawn as (corner, replacement color).
func TestSequentialMatchesReplay(t *testing.T) {
	g := grid.New(5, 5, 3)
	g.Fill(newRng(21))
	before := g.Clone()
	violations := scan.Detect(g)
	if len(violations) == 0 {
		t.Skip("seed produced a rectangle-free grid")
	}

	Sequential{}.Repair(g, violations, newRng(5))

	// Apply the same writes manually.
	want := before.Clone()
	replay := newRng(5)
	for _, v := range violations {
		shared := before.At(v.Row, v.Col)
		corner := v.Corners()[replay.IntN(4)]
		want.Set(corner[0], corner[1], replacement(replay, want.Colors(), shared))
	}

	if !g.Equal(want) {
		t.Fatalf("sequential repair diverged from replay\ngot:\n%s\nwant:\n%s", g, want)
	}
}

// TestSnapshotFirstWriteWins pins the conflict policy: when two
// violations in one pass target the same corner cell, the first write
// survives.
func TestSnapshotFirstWriteWins(t *testing.T) {
	// Uniform 2x3 grid: two 2x2 violations sharing the middle column,
	// plus the full-width 3x2 rectangle.
	g := grid.New(2, 3, 4)
	violations := scan.Detect(g)
	if len(violations) != 3 {
		t.Fatalf("uniform 2x3 should have 3 violations, got %d", len(violations))
	}

	Snapshot{}.Repair(g.Clone(), violations, newRng(1))

	// Search for a seed whose draws collide on one cell, then check
	// the collision resolution explicitly.
	for seed := uint64(1); seed < 200; seed++ {
		writes := make(map[[2]int]int)
		collision := false
		replay := newRng(seed)
		for _, v := range violations {
			corner := v.Corners()[replay.IntN(4)]
			color := replacement(replay, 4, 0)
			if first, seen := writes[corner]; seen {
				collision = true
				_ = first
			} else {
				writes[corner] = color
			}
		}
		if !collision {
			continue
		}

		got := grid.New(2, 3, 4)
		Snapshot{}.Repair(got, violations, newRng(seed))
		for corner, color := range writes {
			if got.At(corner[0], corner[1]) != color {
				t.Fatalf("seed %d: cell %v = %d, want first write %d",
					seed, corner, got.At(corner[0], corner[1]), color)
			}
		}
		return
	}
	t.Fatal("no colliding seed found in range")
}

// TestStrategiesDivergeOnSharedCorners demonstrates the open-question
// behavior: sequential lets the later write win, snapshot the earlier
// one, so the strategies can produce different grids from identical
// inputs.
func TestStrategiesDivergeOnSharedCorners(t *testing.T) {
	for seed := uint64(1); seed < 500; seed++ {
		seq := grid.New(2, 3, 4)
		violations := scan.Detect(seq)
		Sequential{}.Repair(seq, violations, newRng(seed))

		snap := grid.New(2, 3, 4)
		Snapshot{}.Repair(snap, violations, newRng(seed))

		if !seq.Equal(snap) {
			return // found a diverging seed, behavior differs as designed
		}
	}
	t.Fatal("strategies never diverged; conflict handling may be identical")
}
