// Package resid implements the residual-graph arena that bvnround's search
// and flow-push engine mutates: vertices (reviewers and papers), half-edge
// pairs carrying flow and residual, per-vertex signed load, and the sparse
// per-paper-per-institution load table.
//
// Vertices are indexed 1..n (index 0 is an unused sentinel); reviewers
// occupy 1..nRevs and papers occupy nRevs+1..nRevs+nPaps, so vertex class is
// a range test rather than a property of the data (see IsReviewer and
// IsPaper).
//
// Half-edges are stored in a single growable arena. Every conceptual
// reviewer-paper assignment is added as a pair of consecutive half-edges —
// forward (reviewer -> paper) and backward (paper -> reviewer) — allocated
// so that the partner of edge e is e^1. Arena slots 0 and 1 are never
// assigned, which keeps the XOR-partner convention intact from the very
// first pair onward. Removing an edge pair unlinks both halves from their
// endpoint's adjacency list but never frees or reuses the arena slot: the
// final flow recorded on a retired half-edge is exactly the assignment
// bvnround.Round reads back once every pair has gone integral.
//
// This package is intentionally arena/index-based rather than map-keyed: the
// search and flow-push engine needs an explicit partner index (XOR on the
// low bit), a property a string-keyed vertex map cannot express without
// losing the O(1) partner lookup both depend on.
package resid
