// Package rounder implements the recursive augmenting-path/cycle search and
// randomized flow push that drive a resid.Graph from its initial fractional
// state to an all-integral one, plus the outer driver loop that repeats the
// search until no fractional edge pairs remain.
//
// The search (Engine.search) recognizes five closing-structure cases —
// reviewer cycle, reviewer path, paper "even" cycle, paper "odd" cycle,
// paper path — each with its own residual-bound computation. A single
// Engine value is constructed per Run call and
// discarded on return; it owns no state beyond the traversal stack and the
// in-flight residual bounds, and is never reused across calls or shared
// across goroutines.
//
// Direction sampling uses math/rand/v2's top-level generator: forward is
// chosen with probability bw/(fw+bw), i.e. proportional to the *opposite*
// direction's residual, which is what keeps the expected value of every
// edge's final flow equal to its fractional input.
//
// Run panics with *StalledError if a full path-mode-then-cycle-mode double
// pass makes no progress, and with *DeadEndError if the search reaches a
// dead end at a non-seed vertex — both are internal invariant violations
// that bvnround.Round recovers at the package boundary and reports as a
// single InternalError type.
package rounder
