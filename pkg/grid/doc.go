// Package grid provides the mutable color grid that the rectangle-free
// search operates on.
//
// A Grid is a fixed-size M×N array of color indices in [0, Colors).
// It is created once at search start, filled with uniformly random
// colors, and then mutated in place by repair passes. The grid is
// exclusively owned by the search loop; collaborators (renderers,
// recorders, the TUI) receive read-only snapshots via [Grid.Snapshot].
//
// The backing storage is a flat row-major slice, so cell access is a
// single index computation and cloning is a single copy.
package grid
