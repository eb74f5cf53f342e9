package errors

// MaxShapeSide caps grid dimensions. The scanner is O(M²·N²) per pass,
// so anything beyond this is minutes per iteration and almost certainly
// a typo on the command line.
const MaxShapeSide = 1024

// ValidateShape checks that grid dimensions admit a rectangle-free
// search. Both sides must be at least 2: a 1-row or 1-column grid has
// nothing to search for.
func ValidateShape(rows, cols int) error {
	if rows < 2 || cols < 2 {
		return New(ErrCodeInvalidShape, "grid must be at least 2x2, got %dx%d", rows, cols)
	}
	if rows > MaxShapeSide || cols > MaxShapeSide {
		return New(ErrCodeInvalidShape, "grid side cannot exceed %d, got %dx%d", MaxShapeSide, rows, cols)
	}
	return nil
}

// ValidateColors checks the palette size. With a single color every
// 2x2 region trivially violates and no repair is possible, so at least
// two colors are required.
func ValidateColors(colors int) error {
	if colors < 2 {
		return New(ErrCodeInvalidColors, "need at least 2 colors, got %d", colors)
	}
	return nil
}

// ValidateCap checks the iteration cap.
func ValidateCap(maxIterations int) error {
	if maxIterations <= 0 {
		return New(ErrCodeInvalidCap, "iteration cap must be positive, got %d", maxIterations)
	}
	return nil
}
