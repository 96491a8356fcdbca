package rounder

import "fmt"

// StalledError reports that one full path-mode-then-cycle-mode pass over
// every vertex found no closing structure while live edge pairs remained.
// Since the search is deterministic absent a successful push, no later
// pass over the same graph state could succeed either, so Run treats this
// as fatal rather than looping again.
type StalledError struct {
	LivePairs int
}

func (e *StalledError) Error() string {
	return fmt.Sprintf("rounder: stalled with %d live edge pair(s) remaining", e.LivePairs)
}

// DeadEndError reports that the edge selection policy found no live,
// unvisited outgoing edge at a non-seed vertex, which the design treats as
// a bug: invariants guarantee every non-seed vertex the search reaches has
// somewhere left to go.
type DeadEndError struct {
	Vertex int
}

func (e *DeadEndError) Error() string {
	return fmt.Sprintf("rounder: dead end at non-seed vertex %d", e.Vertex)
}
