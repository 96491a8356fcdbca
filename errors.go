package bvnround

import (
	"errors"
	"fmt"
)

// Sentinel boundary-rejection errors, returned by Round before any graph
// state is constructed and checked with errors.Is rather than ad hoc
// fmt.Errorf strings at the boundary.
var (
	// ErrInvalidDimensions indicates a non-positive npaps or nrevs.
	ErrInvalidDimensions = errors.New("bvnround: npaps and nrevs must both be positive")

	// ErrShapeMismatch indicates flows does not have length npaps*nrevs, or
	// contains a value outside [0, 1].
	ErrShapeMismatch = errors.New("bvnround: flows has the wrong length or an out-of-range value")

	// ErrInvalidSubset indicates subsets does not have length nrevs, or
	// contains a non-positive institution label.
	ErrInvalidSubset = errors.New("bvnround: subsets must have length nrevs with strictly positive labels")
)

// InternalError wraps an internal invariant violation raised by the search
// and flow-push engine (a *rounder.StalledError or *rounder.DeadEndError).
// Round recovers these at the package boundary and returns this type rather
// than letting the panic escape. There is no recovery path beyond
// reporting it: this class of error always indicates a bug, not bad input.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("bvnround: internal invariant violation: %v", e.Cause)
}

func (e *InternalError) Unwrap() error { return e.Cause }
