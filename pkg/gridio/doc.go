// Package gridio provides JSON import and export for color grids,
// search reports, and frame logs.
//
// # Overview
//
// Serialization is a caller concern: the search core owns no file
// format. This package defines the formats the CLI uses so that grids
// can be rendered later, runs can be archived, and trajectories can be
// replayed by external tools.
//
// # Grid Format
//
// A grid is a single JSON object:
//
//	{
//	  "rows": 3,
//	  "cols": 3,
//	  "colors": 4,
//	  "cells": [
//	    [0, 1, 2],
//	    [3, 0, 1],
//	    [2, 3, 0]
//	  ]
//	}
//
// cells is row-major with one array per row; every value must lie in
// [0, colors). [ReadGrid] validates shape and color range and wraps
// problems with context about which row or cell is malformed.
//
// # Report Format
//
// A report wraps the final grid with the run outcome:
//
//	{
//	  "status": "converged",
//	  "iterations": 41,
//	  "violation_count": 0,
//	  "best": 0,
//	  "seed": 7,
//	  "run_id": "6a1f...",
//	  "elapsed_ms": 129,
//	  "grid": { ... }
//	}
//
// # Frame Logs
//
// [FrameWriter] is a [search.Observer] that appends one JSON object per
// line (JSONL) for every frame of a run: iteration index, violation
// list, and the full grid. Frame logs can be replayed to reconstruct
// the whole search trajectory.
//
// # Round Trips
//
// Export then import produces an identical grid: dimensions, palette
// size, and every cell are preserved.
package gridio
