// Package bvnround rounds fractional bipartite reviewer/paper assignments
// into deterministic integral ones via randomized rounding over a
// Birkhoff-von Neumann-style flow-graph, preserving each paper's
// per-institution reviewer load alongside the usual row/column marginals.
//
// 🚀 What is bvnround?
//
//	A single-purpose, allocate-on-call rounding engine built from:
//
//	  • gridmath — grid-exact fixed-point floor/ceil/integrality checks
//	  • resid    — the arena-based half-edge residual graph and load tables
//	  • rounder  — the recursive search, randomized push, and driver loop
//
// ✨ Why a dedicated module?
//
//   - Grid-exact   — no floating-point rounding ever decides integrality
//   - Marginal-preserving — expected output equals fractional input
//   - Institution-aware   — per-paper reviewer load by institution is honored
//
// Under the hood, everything is organized under three subpackages:
//
//	gridmath/ — the arithmetic layer
//	resid/    — graph store + load bookkeeping
//	rounder/  — search/flow-push engine + driver loop
//
// Round is the single entry point; callers that only need the rounding
// contract never touch those subpackages directly. matrixio and runlog
// exist purely to support the cmd/bvnround CLI driver.
//
//	go get github.com/revpap/bvnround
package bvnround
