package bvnround

import (
	"math"
	"math/rand/v2"

	"github.com/revpap/bvnround/gridmath"
	"github.com/revpap/bvnround/resid"
	"github.com/revpap/bvnround/rounder"
)

// Round implements run_bvn: given a row-major, paper-major buffer of
// fractional assignments in [0, 1] and the institution each reviewer
// belongs to, it mutates flows in place so every cell holds exactly 0.0 or
// 1.0, forming an integral assignment. Returns nil on success.
//
// Index conventions (boundary-exact): flat index i corresponds to reviewer
// r = i%nrevs + 1 and paper p = i/nrevs + nrevs + 1; vertices 1..nrevs are
// reviewers and nrevs+1..nrevs+npaps are papers. subsets[r-1] is reviewer
// r's institution, a strictly positive label.
//
// Round is single-threaded and non-reentrant: one call runs to completion
// or returns an *InternalError before any later call may begin. There is no
// cancellation and no partial-failure mode, per the concurrency model this
// package carries from its core engine.
func Round(flows []float64, subsets []int, npaps, nrevs int) (err error) {
	if npaps <= 0 || nrevs <= 0 {
		return ErrInvalidDimensions
	}
	if len(flows) != npaps*nrevs {
		return ErrShapeMismatch
	}
	for _, z := range flows {
		if z < 0 || z > 1 {
			return ErrShapeMismatch
		}
	}
	if len(subsets) != nrevs {
		return ErrInvalidSubset
	}
	for _, s := range subsets {
		if s <= 0 {
			return ErrInvalidSubset
		}
	}

	// The first random sample of each call is drawn and discarded.
	_ = rand.Float64()

	g, buildErr := resid.NewGraph(nrevs, npaps, subsets)
	if buildErr != nil {
		return &InternalError{Cause: buildErr}
	}

	for i, frac := range flows {
		z := int64(math.Round(frac * float64(gridmath.Grid)))
		if z <= 0 {
			flows[i] = 0.0
			continue
		}
		r := i%nrevs + 1
		p := i/nrevs + nrevs + 1
		g.AddAssignment(r, p, z)
	}

	if err := runEngine(g); err != nil {
		return err
	}

	g.ForEachAssignment(func(reviewer, paper int, flow int64) {
		i := (paper - nrevs - 1) * nrevs + (reviewer - 1)
		if flow == gridmath.Grid {
			flows[i] = 1.0
		} else {
			flows[i] = 0.0
		}
	})

	return nil
}

// runEngine recovers the engine's internal-invariant panics into a returned
// *InternalError so Round never panics across its own API boundary.
func runEngine(g *resid.Graph) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			switch cause := rec.(type) {
			case *rounder.StalledError:
				err = &InternalError{Cause: cause}
			case *rounder.DeadEndError:
				err = &InternalError{Cause: cause}
			default:
				panic(rec)
			}
		}
	}()

	rounder.NewEngine(g).Run()
	return nil
}
