// Package search runs the stochastic local search for rectangle-free
// grid colorings.
//
// A run starts from a uniformly random grid and alternates strictly
// between scanning (pkg/scan) and repairing (pkg/repair) until a scan
// comes back empty (Converged) or the iteration cap is exhausted.
// The search is heuristic: convergence is typical for small grids and
// increasingly unlikely beyond roughly 11 cells per side with four
// colors.
//
// Execution is single-threaded and fully synchronous. The only random
// source is the seeded generator created from Options.Seed, threaded
// explicitly through grid initialization and every repair pass, so
// identical options reproduce identical runs bit for bit.
//
// Collaborators observe the run through the narrow [Observer] interface
// which receives per-iteration frames (grid snapshot, violation list,
// iteration index) and best-count progress events. The loop owns the
// grid; observers only ever see snapshots.
package search
