// Package repair mutates a grid to break detected rectangle violations.
//
// For each violation in a pass, a repair picks one of the four corners
// uniformly at random and recolors it with a color drawn uniformly from
// the palette minus the violation's shared corner color. This is a
// one-step local mutation: the targeted violation may survive (another
// corner pairing can still coincide) and new violations may appear
// elsewhere. Convergence emerges, when it does, from repeated
// scan/repair cycles driven by pkg/search.
//
// Two strategies differ only in how they handle violations that share a
// corner cell within one pass:
//
//   - [Sequential] applies each repair directly to the shared grid in
//     scanner order, so a later repair can silently overwrite an
//     earlier one. This matches the behavior of the original search.
//   - [Snapshot] draws every corner choice and replacement color
//     against the pre-pass grid, then applies the writes in scanner
//     order with a first-write-wins conflict policy: a cell already
//     recolored in this pass is left alone by later repairs.
//
// On grids where no two violations share a corner the strategies are
// indistinguishable.
package repair
