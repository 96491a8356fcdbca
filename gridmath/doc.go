// Package gridmath provides exact fixed-point arithmetic on the probability
// grid used throughout bvnround: every probability is represented as an
// int64 multiple of 1/Grid, so flooring, ceiling, and integrality testing
// never touch a binary float.
//
// It is a small, single-purpose leaf package with no dependencies of its
// own: resid, rounder, and the root bvnround package sit above it, while
// the I/O packages matrixio and runlog do not use it.
package gridmath
