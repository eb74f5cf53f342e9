package grid

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Grid is a fixed-size two-dimensional array of color indices.
// Dimensions are fixed for the lifetime of the grid; cells hold
// integers in [0, Colors).
type Grid struct {
	rows   int
	cols   int
	colors int
	cells  []int
}

// New creates a grid with the given dimensions and color count.
// All cells start as color 0; use [Grid.Fill] for a random coloring.
// New panics if rows, cols, or colors is not positive; dimension
// validation belongs to the caller (see pkg/errors).
func New(rows, cols, colors int) *Grid {
	if rows <= 0 || cols <= 0 || colors <= 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d with %d colors", rows, cols, colors))
	}
	return &Grid{
		rows:   rows,
		cols:   cols,
		colors: colors,
		cells:  make([]int, rows*cols),
	}
}

// Rows returns the number of rows (M).
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns (N).
func (g *Grid) Cols() int { return g.cols }

// Colors returns the palette size (K).
func (g *Grid) Colors() int { return g.colors }

// At returns the color at (row, col).
func (g *Grid) At(row, col int) int {
	return g.cells[row*g.cols+col]
}

// Set assigns the color at (row, col).
func (g *Grid) Set(row, col, color int) {
	g.cells[row*g.cols+col] = color
}

// Fill assigns an independent uniformly random color to every cell.
func (g *Grid) Fill(rng *rand.Rand) {
	for i := range g.cells {
		g.cells[i] = rng.IntN(g.colors)
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		rows:   g.rows,
		cols:   g.cols,
		colors: g.colors,
		cells:  make([]int, len(g.cells)),
	}
	copy(clone.cells, g.cells)
	return clone
}

// Snapshot returns an immutable view of the grid's current contents.
// Snapshots are what the search loop hands to collaborators; they stay
// valid while the underlying grid keeps mutating.
func (g *Grid) Snapshot() Snapshot {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return Snapshot{
		rows:   g.rows,
		cols:   g.cols,
		colors: g.colors,
		cells:  cells,
	}
}

// Equal reports whether two grids have identical dimensions, palette
// size, and cell contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols || g.colors != other.colors {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// Cells returns a copy of the flat row-major cell slice.
func (g *Grid) Cells() []int {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return cells
}

// SetCells replaces the grid contents with the given flat row-major
// slice. It returns an error if the length does not match the grid
// dimensions or a value falls outside [0, Colors).
func (g *Grid) SetCells(cells []int) error {
	if len(cells) != g.rows*g.cols {
		return fmt.Errorf("grid: %d cells for %dx%d grid", len(cells), g.rows, g.cols)
	}
	for i, c := range cells {
		if c < 0 || c >= g.colors {
			return fmt.Errorf("grid: cell %d has color %d outside [0, %d)", i, c, g.colors)
		}
	}
	copy(g.cells, cells)
	return nil
}

// String renders the grid as rows of space-separated color indices.
// Intended for debugging and test failure output.
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d", g.At(r, c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Snapshot is a read-only copy of a grid taken at a point in time.
type Snapshot struct {
	rows   int
	cols   int
	colors int
	cells  []int
}

// Rows returns the number of rows.
func (s Snapshot) Rows() int { return s.rows }

// Cols returns the number of columns.
func (s Snapshot) Cols() int { return s.cols }

// Colors returns the palette size.
func (s Snapshot) Colors() int { return s.colors }

// At returns the color at (row, col).
func (s Snapshot) At(row, col int) int {
	return s.cells[row*s.cols+col]
}

// Cells returns a copy of the flat row-major cell slice.
func (s Snapshot) Cells() []int {
	cells := make([]int, len(s.cells))
	copy(cells, s.cells)
	return cells
}
