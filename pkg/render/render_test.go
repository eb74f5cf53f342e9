package render

import (
	"strings"
	"testing"

	"github.com/rectfree/rectfree/pkg/grid"
	"github.com/rectfree/rectfree/pkg/scan"
)

func TestCellColorCycles(t *testing.T) {
	if CellColor(0) != palette[0] {
		t.Errorf("CellColor(0) = %q", CellColor(0))
	}
	if CellColor(len(palette)) != palette[0] {
		t.Error("palette should cycle past its length")
	}
	if CellColor(3) == CellColor(4) {
		t.Error("adjacent indices should differ")
	}
}

func TestToDOTStructure(t *testing.T) {
	g := grid.New(2, 3, 4)
	g.Set(0, 0, 1)
	g.Set(1, 2, 3)

	dot := ToDOT(g.Snapshot(), nil, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Fatalf("not an undirected graph:\n%s", dot)
	}
	if !strings.Contains(dot, "layout=neato;") {
		t.Error("missing neato layout directive")
	}
	// One pinned node per cell.
	for _, id := range []string{"c0_0", "c0_1", "c0_2", "c1_0", "c1_1", "c1_2"} {
		if !strings.Contains(dot, "  "+id+" [pos=\"") {
			t.Errorf("missing node %s", id)
		}
	}
	// Cell colors come from the palette.
	if !strings.Contains(dot, CellColor(1)) || !strings.Contains(dot, CellColor(3)) {
		t.Error("cell fill colors missing from output")
	}
	// Row 0 is drawn above row 1: its y coordinate is larger.
	if !strings.Contains(dot, "c0_0 [pos=\"0.00,0.60!\"") {
		t.Errorf("row 0 not flipped to top:\n%s", dot)
	}
	if !strings.Contains(dot, "c1_0 [pos=\"0.00,0.00!\"") {
		t.Errorf("row 1 not at bottom:\n%s", dot)
	}
	// No violation edges requested.
	if strings.Contains(dot, "--") {
		t.Error("unexpected edges without ShowViolations")
	}
}

func TestToDOTViolationOutline(t *testing.T) {
	g := grid.New(3, 3, 2)
	violations := []scan.Violation{{Row: 0, Col: 0, Width: 2, Height: 2}}

	dot := ToDOT(g.Snapshot(), violations, Options{ShowViolations: true})

	for _, edge := range []string{
		"c0_0 -- c0_1", // top
		"c0_1 -- c1_1", // right
		"c1_1 -- c1_0", // bottom
		"c1_0 -- c0_0", // left
	} {
		if !strings.Contains(dot, edge) {
			t.Errorf("missing outline edge %q:\n%s", edge, dot)
		}
	}
	if !strings.Contains(dot, violationColor) {
		t.Error("violation edges missing highlight color")
	}
}

func TestToDOTLabels(t *testing.T) {
	g := grid.New(2, 2, 3)
	g.Set(0, 1, 2)

	without := ToDOT(g.Snapshot(), nil, Options{})
	if !strings.Contains(without, `label=""`) {
		t.Error("labels should be empty by default")
	}

	with := ToDOT(g.Snapshot(), nil, Options{Labels: true})
	if !strings.Contains(with, `label="2"`) {
		t.Error("Labels option should print color indices")
	}
}

func TestToDOTCellSize(t *testing.T) {
	g := grid.New(2, 2, 2)
	dot := ToDOT(g.Snapshot(), nil, Options{CellSize: 1.0})
	if !strings.Contains(dot, "c0_1 [pos=\"1.00,1.00!\"") {
		t.Errorf("cell size not applied:\n%s", dot)
	}
}

func TestLegend(t *testing.T) {
	got := Legend(3)
	want := "0=" + CellColor(0) + " 1=" + CellColor(1) + " 2=" + CellColor(2)
	if got != want {
		t.Errorf("Legend(3) = %q, want %q", got, want)
	}
}
