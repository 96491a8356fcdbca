// Package matrixio encodes and decodes the flows buffer bvnround.Round
// operates on, plus the subset labels that accompany it, so a driver can
// load a fractional assignment from disk and persist the rounded result.
//
// Matrix follows matrix.Dense's row-major, flat-backing-slice layout
// (NPaps/NRevs fields, At/Set methods), re-expressed for JSON and CSV serialization instead
// of linear algebra: the solvers in matrix/ops (LU, QR, eigen,
// Floyd-Warshall) have no role in a 0/1 rounding routine, so only the
// storage convention is carried over here, not the algorithms.
//
// This package is pure I/O: it never imports gridmath, resid, or rounder,
// and bvnround.Round never imports it back. A caller is free to use Round
// as a library with its own in-memory flows buffer and skip matrixio
// entirely; it exists for cmd/bvnround and similar drivers.
package matrixio
