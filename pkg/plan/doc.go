// Package plan places square blasts over a coverage map and picks the best
// placement.
//
// # Overview
//
// A blast ([Shot]) strikes a [Step]×[Step] footprint centered on its row and
// column. Planning a silhouette runs four stages, all deterministic and all
// reading the same immutable [coverage.Map]:
//
//  1. Tiling: [Tiler.Lines] scans every Step-th row of one phase and places
//     shots greedily, first-fit then largest safe skip.
//  2. Anti-aliasing: [Tiler.Refine] re-tiles at finer row offsets and keeps
//     only shots that strike a cell nothing has struck yet.
//  3. Scoring: [Score] measures accuracy, efficiency and error and picks the
//     cheapest of the eight launch orientations.
//  4. Selection: [Select] evaluates every [Candidate] (phase × direction ×
//     anti-alias depth) and keeps the best by [Better].
//
// # Propulsion
//
// Every shot carries an eight-entry cost table ([Shot.Costs]), one (X, Z)
// pair per orientation. Each entry comes from [Propulsion], the number of
// discrete launch units needed to move a projectile a given distance.
//
// # Concurrency
//
// Candidates share nothing but the coverage map, so [Select] evaluates them
// on a bounded pool. Results are stored by enumeration index and reduced in
// that order, so the winner never depends on scheduling.
package plan
