package scan

import (
	"math/rand/v2"
	"testing"

	"github.com/rectfree/rectfree/pkg/grid"
)

// fill sets every cell from a row-major literal.
func fill(t *testing.T, g *grid.Grid, cells []int) {
	t.Helper()
	if err := g.SetCells(cells); err != nil {
		t.Fatalf("SetCells: %v", err)
	}
}

func TestDetectMonochromaticClosedForm(t *testing.T) {
	// A uniform grid violates at every row pair x column pair:
	// C(M,2) * C(N,2) violations.
	tests := []struct {
		rows, cols int
		want       int
	}{
		{2, 2, 1},
		{3, 3, 9},
		{3, 4, 18},
		{4, 4, 36},
		{5, 2, 10},
	}

	for _, tt := range tests {
		g := grid.New(tt.rows, tt.cols, 4)
		// All cells are color 0 by construction.
		got := len(Detect(g))
		if got != tt.want {
			t.Errorf("Detect(%dx%d uniform) = %d violations, want %d", tt.rows, tt.cols, got, tt.want)
		}
		if n := Count(g); n != got {
			t.Errorf("Count(%dx%d uniform) = %d, want %d", tt.rows, tt.cols, n, got)
		}
	}
}

func TestDetectDegenerateShapes(t *testing.T) {
	for _, tt := range []struct{ rows, cols int }{{1, 5}, {5, 1}, {1, 1}} {
		g := grid.New(tt.rows, tt.cols, 2)
		if got := Detect(g); len(got) != 0 {
			t.Errorf("Detect(%dx%d) = %v, want empty", tt.rows, tt.cols, got)
		}
	}
}

func TestDetectKnownGrid(t *testing.T) {
	// 3x3 with exactly one violating rectangle: the 2x2 of 1s at the
	// top-left.
	g := grid.New(3, 3, 3)
	fill(t, g, []int{
		1, 1, 2,
		1, 1, 0,
		2, 0, 2,
	})

	got := Detect(g)
	want := Violation{Row: 0, Col: 0, Width: 2, Height: 2}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("Detect = %v, want exactly [%v]", got, want)
	}
}

func TestDetectOrdering(t *testing.T) {
	// Violations come out sorted by width, then height, then row, then
	// column. The uniform grid exercises every rectangle shape.
	g := grid.New(4, 4, 2)

	got := Detect(g)
	if len(got) != 36 {
		t.Fatalf("uniform 4x4 should have 36 violations, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		a, b := got[i-1], got[i]
		ka := [4]int{a.Width, a.Height, a.Row, a.Col}
		kb := [4]int{b.Width, b.Height, b.Row, b.Col}
		if !less(ka, kb) {
			t.Fatalf("violations out of order: %v before %v", a, b)
		}
	}
}

func less(a, b [4]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func TestDetectIdempotent(t *testing.T) {
	g := grid.New(5, 5, 2)
	rng := rand.New(rand.NewPCG(7, 7))
	g.Fill(rng)

	first := Detect(g)
	second := Detect(g)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("violation %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

// TestDetectSoundAndComplete cross-checks Detect against a direct
// corner comparison over every (r1<r2, c1<c2) quadruple on random
// grids.
func TestDetectSoundAndComplete(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))

	for trial := 0; trial < 20; trial++ {
		rows := 2 + rng.IntN(5)
		cols := 2 + rng.IntN(5)
		colors := 2 + rng.IntN(3)
		g := grid.New(rows, cols, colors)
		g.Fill(rng)

		found := make(map[Violation]bool)
		for _, v := range Detect(g) {
			// Soundness: the four corners really are equal.
			corners := v.Corners()
			color := g.At(corners[0][0], corners[0][1])
			for _, c := range corners[1:] {
				if g.At(c[0], c[1]) != color {
					t.Fatalf("unsound violation %v on grid:\n%s", v, g)
				}
			}
			if found[v] {
				t.Fatalf("duplicate violation %v", v)
			}
			found[v] = true
		}

		// Completeness: every monochromatic quadruple was reported.
		for r1 := 0; r1 < rows; r1++ {
			for r2 := r1 + 1; r2 < rows; r2++ {
				for c1 := 0; c1 < cols; c1++ {
					for c2 := c1 + 1; c2 < cols; c2++ {
						mono := g.At(r1, c1) == g.At(r1, c2) &&
							g.At(r1, c1) == g.At(r2, c1) &&
							g.At(r1, c1) == g.At(r2, c2)
						v := Violation{Row: r1, Col: c1, Width: c2 - c1 + 1, Height: r2 - r1 + 1}
						if mono != found[v] {
							t.Fatalf("quadruple (%d,%d)-(%d,%d): mono=%v reported=%v on grid:\n%s",
								r1, c1, r2, c2, mono, found[v], g)
						}
					}
				}
			}
		}
	}
}

func TestViolationCorners(t *testing.T) {
	v := Violation{Row: 1, Col: 2, Width: 3, Height: 2}
	want := [4][2]int{{1, 2}, {1, 4}, {2, 2}, {2, 4}}
	if got := v.Corners(); got != want {
		t.Errorf("Corners() = %v, want %v", got, want)
	}
	if s := v.String(); s != "3x2@(1,2)" {
		t.Errorf("String() = %q", s)
	}
}
