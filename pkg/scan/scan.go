package scan

import (
	"fmt"

	"github.com/rectfree/rectfree/pkg/grid"
)

// Violation identifies an axis-aligned rectangle whose four corners
// hold the same color. Row and Col name the top-left corner; Width and
// Height are the full extents, both at least 2 (1-wide or 1-tall
// rectangles are degenerate and never reported).
type Violation struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Corners returns the four corner coordinates as (row, col) pairs in
// the order top-left, top-right, bottom-left, bottom-right.
func (v Violation) Corners() [4][2]int {
	return [4][2]int{
		{v.Row, v.Col},
		{v.Row, v.Col + v.Width - 1},
		{v.Row + v.Height - 1, v.Col},
		{v.Row + v.Height - 1, v.Col + v.Width - 1},
	}
}

// String renders the violation as "WxH@(row,col)".
func (v Violation) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", v.Width, v.Height, v.Row, v.Col)
}

// Detect returns every rectangle violation in g, ordered by increasing
// width, then height, then row, then column. Grids with fewer than two
// rows or two columns cannot contain a rectangle and yield an empty
// list.
func Detect(g *grid.Grid) []Violation {
	rows, cols := g.Rows(), g.Cols()
	if rows < 2 || cols < 2 {
		return nil
	}

	var violations []Violation
	for w := 2; w <= cols; w++ {
		for h := 2; h <= rows; h++ {
			for r := 0; r+h <= rows; r++ {
				for c := 0; c+w <= cols; c++ {
					color := g.At(r, c)
					if g.At(r, c+w-1) == color &&
						g.At(r+h-1, c) == color &&
						g.At(r+h-1, c+w-1) == color {
						violations = append(violations, Violation{Row: r, Col: c, Width: w, Height: h})
					}
				}
			}
		}
	}
	return violations
}

// Count returns the number of violations without materializing the
// list. Same enumeration as [Detect].
func Count(g *grid.Grid) int {
	rows, cols := g.Rows(), g.Cols()
	if rows < 2 || cols < 2 {
		return 0
	}

	count := 0
	for w := 2; w <= cols; w++ {
		for h := 2; h <= rows; h++ {
			for r := 0; r+h <= rows; r++ {
				for c := 0; c+w <= cols; c++ {
					color := g.At(r, c)
					if g.At(r, c+w-1) == color &&
						g.At(r+h-1, c) == color &&
						g.At(r+h-1, c+w-1) == color {
						count++
					}
				}
			}
		}
	}
	return count
}
