package gridio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rectfree/rectfree/pkg/grid"
	"github.com/rectfree/rectfree/pkg/search"
)

// gridJSON is the serialized grid format.
type gridJSON struct {
	Rows   int     `json:"rows"`
	Cols   int     `json:"cols"`
	Colors int     `json:"colors"`
	Cells  [][]int `json:"cells"`
}

// reportJSON is the serialized search report format.
type reportJSON struct {
	Status         string   `json:"status"`
	Iterations     int      `json:"iterations"`
	ViolationCount int      `json:"violation_count"`
	Best           int      `json:"best"`
	Seed           uint64   `json:"seed"`
	RunID          string   `json:"run_id"`
	ElapsedMS      int64    `json:"elapsed_ms"`
	Grid           gridJSON `json:"grid"`
}

func toGridJSON(rows, cols, colors int, at func(r, c int) int) gridJSON {
	cells := make([][]int, rows)
	for r := 0; r < rows; r++ {
		row := make([]int, cols)
		for c := 0; c < cols; c++ {
			row[c] = at(r, c)
		}
		cells[r] = row
	}
	return gridJSON{Rows: rows, Cols: cols, Colors: colors, Cells: cells}
}

// WriteGrid encodes a grid as indented JSON and writes it to w.
func WriteGrid(g *grid.Grid, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toGridJSON(g.Rows(), g.Cols(), g.Colors(), g.At))
}

// ExportGrid writes a grid to the given file path.
func ExportGrid(g *grid.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteGrid(g, f); err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	return f.Close()
}

// WriteReport encodes a search result as indented JSON and writes it to w.
func WriteReport(res *search.Result, w io.Writer) error {
	g := res.Grid
	out := reportJSON{
		Status:         res.Status.String(),
		Iterations:     res.Iterations,
		ViolationCount: len(res.Violations),
		Best:           res.Best,
		Seed:           res.Seed,
		RunID:          res.RunID,
		ElapsedMS:      res.Elapsed.Milliseconds(),
		Grid:           toGridJSON(g.Rows(), g.Cols(), g.Colors(), g.At),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ExportReport writes a search report to the given file path.
func ExportReport(res *search.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteReport(res, f); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

// MarshalGrid returns the canonical JSON encoding of a grid without
// indentation. Used for cache entries and content hashing.
func MarshalGrid(g *grid.Grid) ([]byte, error) {
	return json.Marshal(toGridJSON(g.Rows(), g.Cols(), g.Colors(), g.At))
}
