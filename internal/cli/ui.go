package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rectfree/rectfree/pkg/grid"
	"github.com/rectfree/rectfree/pkg/render"
	"github.com/rectfree/rectfree/pkg/scan"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleViolation = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Grid Display
// =============================================================================

// maxInlineGridCols caps the shapes printed directly to the terminal.
const maxInlineGridCols = 48

// cellStyle returns the lipgloss style for a palette index, using the
// same hex colors the SVG renderer uses.
func cellStyle(color int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(render.CellColor(color)))
}

// gridView renders a grid snapshot as rows of colored blocks.
// Violation corner cells are drawn with a distinct glyph so active
// rectangles stand out while the search runs.
func gridView(s grid.Snapshot, violations []scan.Violation) string {
	corners := make(map[[2]int]bool, len(violations)*4)
	for _, v := range violations {
		for _, c := range v.Corners() {
			corners[c] = true
		}
	}

	var b strings.Builder
	for r := 0; r < s.Rows(); r++ {
		for c := 0; c < s.Cols(); c++ {
			style := cellStyle(s.At(r, c))
			if corners[[2]int{r, c}] {
				b.WriteString(style.Render("▚▞"))
			} else {
				b.WriteString(style.Render("██"))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// printGrid prints a grid to stdout when it is small enough to be
// readable inline.
func printGrid(s grid.Snapshot, violations []scan.Violation) {
	if s.Cols() > maxInlineGridCols {
		printDetail("grid too wide to print (%d cols); use 'rectfree render'", s.Cols())
		return
	}
	fmt.Println()
	for _, line := range strings.Split(strings.TrimRight(gridView(s, violations), "\n"), "\n") {
		fmt.Println("  " + line)
	}
	fmt.Println()
}
