// Package render draws color grids and their rectangle violations.
//
// [ToDOT] emits a Graphviz neato graph with one pinned circle node per
// cell, filled from a fixed palette, and the outline of every violation
// rectangle drawn between its four corner cells. [RenderSVG] and
// [RenderPNG] run the DOT through Graphviz. Rendering consumes grid
// snapshots and violation lists only; it performs no computation
// relevant to the search itself.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/rectfree/rectfree/pkg/grid"
	"github.com/rectfree/rectfree/pkg/observability"
	"github.com/rectfree/rectfree/pkg/scan"
)

// DefaultCellSize is the cell spacing in inches used when none is set.
const DefaultCellSize = 0.6

// palette holds the cell fill colors. Palettes cycle when the grid has
// more colors than entries.
var palette = []string{
	"#4e79a7", // blue
	"#f28e2b", // orange
	"#59a14f", // green
	"#e15759", // red
	"#b07aa1", // purple
	"#76b7b2", // teal
	"#edc948", // yellow
	"#9c755f", // brown
	"#ff9da7", // pink
	"#bab0ac", // gray
}

const violationColor = "#d62728"

// Options configures grid rendering.
type Options struct {
	// CellSize is the spacing between cell centers in inches.
	// Defaults to [DefaultCellSize].
	CellSize float64

	// ShowViolations outlines each violation rectangle.
	ShowViolations bool

	// Labels writes the color index inside each cell.
	Labels bool
}

// CellColor returns the fill color for a color index.
func CellColor(color int) string {
	return palette[color%len(palette)]
}

// ToDOT converts a grid snapshot and its violation list to Graphviz DOT
// for neato layout. Every cell is pinned to its grid position, so the
// drawing is an exact picture of the grid.
func ToDOT(s grid.Snapshot, violations []scan.Violation, opts Options) string {
	size := opts.CellSize
	if size <= 0 {
		size = DefaultCellSize
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=%.2f, penwidth=1, color=\"#333333\", fontsize=10];\n", size*0.75)
	buf.WriteString("\n")

	rows, cols := s.Rows(), s.Cols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			color := s.At(r, c)
			label := ""
			if opts.Labels {
				label = fmt.Sprintf("%d", color)
			}
			// Row 0 is drawn at the top, so flip the y axis.
			fmt.Fprintf(&buf, "  %s [pos=\"%.2f,%.2f!\", fillcolor=%q, label=%q];\n",
				cellID(r, c), float64(c)*size, float64(rows-1-r)*size, CellColor(color), label)
		}
	}

	if opts.ShowViolations && len(violations) > 0 {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  edge [color=%q, penwidth=2];\n", violationColor)
		for _, v := range violations {
			corners := v.Corners()
			tl, tr, bl, br := corners[0], corners[1], corners[2], corners[3]
			writeEdge(&buf, tl, tr)
			writeEdge(&buf, tr, br)
			writeEdge(&buf, br, bl)
			writeEdge(&buf, bl, tl)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func cellID(row, col int) string {
	return fmt.Sprintf("c%d_%d", row, col)
}

func writeEdge(buf *bytes.Buffer, a, b [2]int) {
	fmt.Fprintf(buf, "  %s -- %s;\n", cellID(a[0], a[1]), cellID(b[0], b[1]))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, string(format))

	out, err := doRender(ctx, dot, format)
	observability.Render().OnRenderComplete(ctx, string(format), len(out), time.Since(start), err)
	return out, err
}

func doRender(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Legend returns a one-line terminal legend mapping color indices to
// their hex fills, for CLI output next to rendered files.
func Legend(colors int) string {
	parts := make([]string, 0, colors)
	for i := 0; i < colors; i++ {
		parts = append(parts, fmt.Sprintf("%d=%s", i, CellColor(i)))
	}
	return strings.Join(parts, " ")
}
