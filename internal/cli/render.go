package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rectfree/rectfree/pkg/gridio"
	"github.com/rectfree/rectfree/pkg/render"
	"github.com/rectfree/rectfree/pkg/scan"
)

// renderCommand creates the render command for drawing saved grids.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format     string
		output     string
		cellSize   float64
		labels     bool
		violations bool
	)

	cmd := &cobra.Command{
		Use:   "render [grid.json]",
		Short: "Draw a saved grid as SVG, PNG, or DOT",
		Long: `Draw a grid (produced by 'search --output') as an image.

Each cell becomes a filled circle; when the grid still contains
violations, their rectangles are outlined. The DOT format emits the
Graphviz source instead of rendering it, for further processing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], renderParams{
				format:         f,
				output:         output,
				cellSize:       cellSize,
				labels:         labels,
				showViolations: violations,
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the input name with the format extension)")
	cmd.Flags().Float64Var(&cellSize, "cell-size", render.DefaultCellSize, "cell spacing in inches")
	cmd.Flags().BoolVar(&labels, "labels", false, "write color indices inside cells")
	cmd.Flags().BoolVar(&violations, "violations", true, "outline violating rectangles")

	return cmd
}

// renderParams bundles the render command's options.
type renderParams struct {
	format         string
	output         string
	cellSize       float64
	labels         bool
	showViolations bool
}

// runRender loads the grid, scans it, and writes the drawing.
func (c *CLI) runRender(ctx context.Context, input string, p renderParams) error {
	g, err := gridio.ImportGrid(input)
	if err != nil {
		return err
	}

	var found []scan.Violation
	if p.showViolations {
		found = scan.Detect(g)
		if len(found) > 0 {
			printWarning("grid contains %d violations", len(found))
		}
	}

	dot := render.ToDOT(g.Snapshot(), found, render.Options{
		CellSize:       p.cellSize,
		ShowViolations: p.showViolations,
		Labels:         p.labels,
	})

	var data []byte
	switch p.format {
	case formatDOT:
		data = []byte(dot)
	case formatPNG:
		data, err = render.RenderPNG(ctx, dot)
	default:
		data, err = render.RenderSVG(ctx, dot)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", p.format, err)
	}

	out := p.output
	if out == "" {
		out = strings.TrimSuffix(input, ".json") + "." + p.format
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Rendered %dx%d grid", g.Rows(), g.Cols())
	printDetail("palette: %s", render.Legend(g.Colors()))
	printFile(out)
	return nil
}
