package cli

import (
	"strconv"
	"strings"

	"github.com/rectfree/rectfree/pkg/errors"
)

// parseShape parses a grid shape argument: either a single integer N
// for a square N×N grid, or "MxN" (also accepted with uppercase X) for
// a rectangular one.
func parseShape(arg string) (rows, cols int, err error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, 0, errors.New(errors.ErrCodeInvalidShape, "missing grid shape")
	}

	parts := strings.SplitN(strings.ToLower(arg), "x", 2)
	switch len(parts) {
	case 1:
		n, convErr := strconv.Atoi(parts[0])
		if convErr != nil {
			return 0, 0, errors.New(errors.ErrCodeInvalidShape, "invalid shape %q: expected N or MxN", arg)
		}
		rows, cols = n, n
	case 2:
		m, errM := strconv.Atoi(parts[0])
		n, errN := strconv.Atoi(parts[1])
		if errM != nil || errN != nil {
			return 0, 0, errors.New(errors.ErrCodeInvalidShape, "invalid shape %q: expected N or MxN", arg)
		}
		rows, cols = m, n
	}

	if err := errors.ValidateShape(rows, cols); err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

// Output format names for the render command.
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatDOT = "dot"
)

// parseFormat validates a render format name.
func parseFormat(s string) (string, error) {
	switch s {
	case "", formatSVG:
		return formatSVG, nil
	case formatPNG, formatDOT:
		return s, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: svg, png, dot)", s)
}
