// Package runlog builds the structured logger the cmd/bvnround driver uses
// to report a one-line summary of each run. It is deliberately small: the
// core packages (gridmath, resid, rounder) accept no logger at all, since
// diagnostics are a driver concern, not the rounding engine's.
//
// New is grounded on Hola-to-network_logistics_problem's
// pkg/logger.InitWithConfig, reduced from a package-level singleton to a
// constructor returning *slog.Logger: a library has no business owning
// global mutable state, even for something as innocuous as a logger.
package runlog
