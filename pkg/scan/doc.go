// Package scan detects rectangle violations in a color grid.
//
// A rectangle violation is an axis-aligned rectangle whose four corner
// cells hold the same color. [Detect] enumerates every rectangle shape
// and position (all pairs of distinct rows crossed with all pairs of
// distinct columns, O(M²·N²) per scan) and returns the complete
// violation set in a fixed deterministic order. This exactness is the correctness
// contract the repair pass and the search loop rely on: the returned
// list has no false positives and no false negatives for the grid at
// the moment of the call.
//
// Detect is a pure function of the grid contents. Calling it twice on
// an unmodified grid returns identical ordered lists.
package scan
