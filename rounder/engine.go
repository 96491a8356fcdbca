package rounder

import (
	"math/rand/v2"

	"github.com/revpap/bvnround/gridmath"
	"github.com/revpap/bvnround/resid"
)

// Engine holds the traversal state for one top-level search call: the
// stacked edges of the current descent and the residual bounds being
// propagated back up to the frame that will perform the push. It carries
// no state across calls to Run — all of it is reset at the start of each
// seed attempt.
type Engine struct {
	g *resid.Graph

	stack []int
	fw, bw int64
	btm    int
}

// NewEngine wraps g for a single Run invocation. The caller retains
// ownership of g; Engine never retains it beyond the call.
func NewEngine(g *resid.Graph) *Engine {
	return &Engine{g: g}
}

// Run drives g to an all-integral state, alternating path-mode and
// cycle-mode passes until no live edge pairs remain. It panics with
// *StalledError or *DeadEndError on internal invariant violations; callers
// that need a returned error (rather than a panic) should recover at their
// own boundary.
func (e *Engine) Run() {
	for e.g.LivePairs() > 0 {
		if e.attemptPass(true) {
			continue
		}
		if e.attemptPass(false) {
			continue
		}
		panic(&StalledError{LivePairs: e.g.LivePairs()})
	}
}

// attemptPass resets vertex-visited marks and tries every vertex in turn as
// a seed, stopping at the first successful push. In path mode only
// fractionally loaded vertices are tried as seeds (an integrally loaded
// vertex has nothing to contribute to an augmenting path); cycle mode tries
// every vertex, since a cycle can close through an already-balanced one.
func (e *Engine) attemptPass(pathMode bool) bool {
	e.g.ResetVisited()
	for v := 1; v <= e.g.NumVertices(); v++ {
		if pathMode && gridmath.Integral(e.g.Load(v)) {
			continue
		}

		e.stack = e.stack[:0]
		e.fw, e.bw, e.btm = 0, 0, 0

		if e.search(v, 0, pathMode, true) {
			return true
		}
	}
	return false
}

// search is the recursive heart of the engine: descend from x (reached via
// inEdge, 0 at the seed), detect closing structures, and otherwise pick one
// live unvisited outgoing edge and recurse. isSeed marks the outermost call
// of one attemptPass iteration.
func (e *Engine) search(x, inEdge int, pathMode, isSeed bool) bool {
	var yi *resid.InstEntry
	if e.g.IsPaper(x) && inEdge != 0 {
		yi = e.g.FindInstitution(x, e.g.ReviewerInstitution(e.g.EdgeFrom(inEdge)))
	}

	if e.detectClosure(x, yi, pathMode, isSeed) {
		return true
	}

	selectInst := 0
	if yi != nil && gridmath.Integral(yi.Load()) {
		selectInst = yi.Inst()
	}

	t := e.g.FindFractionalEdge(x, selectInst)
	if t == resid.NoEdge {
		if isSeed {
			return false
		}
		panic(&DeadEndError{Vertex: x})
	}

	partner := e.g.Partner(t)
	e.g.SetEdgeVisited(t, true)
	e.g.SetEdgeVisited(partner, true)

	var zi *resid.InstEntry
	if e.g.IsReviewer(x) {
		e.g.SetVertexVisited(x, true)
	} else {
		zi = e.g.EnsureInstitution(x, e.g.ReviewerInstitution(e.g.EdgeTo(t)))
		zi.Visited = true
		if !gridmath.Integral(zi.Load()) {
			e.g.SetVertexVisited(x, true)
		}
	}

	e.stack = append(e.stack, t)
	myPos := len(e.stack) - 1

	ok := e.search(e.g.EdgeTo(t), t, pathMode, false)

	e.fw = min64(e.fw, e.g.Flow(t))
	e.bw = min64(e.bw, e.g.Flow(partner))

	e.g.SetEdgeVisited(t, false)
	e.g.SetEdgeVisited(partner, false)
	if zi != nil {
		zi.Visited = false
	}

	if !ok {
		return false
	}

	if myPos == e.btm && e.fw+e.bw > 0 {
		if isSeed && pathMode {
			e.tightenSeedGaps(x, zi)
		}
		if e.fw+e.bw > 0 {
			e.pushFlow()
		} else {
			e.fw, e.bw = 0, 0
		}
	}

	if e.g.IsPaper(x) && yi != nil && zi != nil && yi != zi {
		e.fw = min64(e.fw, ceilGap(zi.Load()))
		e.fw = min64(e.fw, floorGap(yi.Load()))
		e.bw = min64(e.bw, floorGap(zi.Load()))
		e.bw = min64(e.bw, ceilGap(yi.Load()))
	}

	return true
}

// detectClosure checks the five closing-structure cases in order and, on a
// match, records e.btm/e.fw/e.bw and reports success.
func (e *Engine) detectClosure(x int, yi *resid.InstEntry, pathMode, isSeed bool) bool {
	switch {
	case e.g.IsReviewer(x) && e.g.VertexVisited(x):
		i, ok := e.firstStackedFrom(x, nil)
		if !ok {
			return false
		}
		e.btm = i
		e.fw, e.bw = gridmath.Grid, gridmath.Grid
		return true

	case pathMode && e.g.IsReviewer(x) && !isSeed && !gridmath.Integral(e.g.Load(x)):
		e.btm = 0
		e.fw = ceilGap(e.g.Load(x))
		e.bw = floorGap(e.g.Load(x))
		return true

	case e.g.IsPaper(x) && yi != nil && yi.Visited:
		i, ok := e.firstStackedFrom(x, func(t int) bool {
			return e.g.ReviewerInstitution(e.g.EdgeTo(t)) == yi.Inst()
		})
		if !ok {
			return false
		}
		e.btm = i
		e.fw, e.bw = gridmath.Grid, gridmath.Grid
		return true

	case e.g.IsPaper(x) && e.g.VertexVisited(x) && yi != nil && !gridmath.Integral(yi.Load()):
		var wi *resid.InstEntry
		i, ok := e.firstStackedFrom(x, func(t int) bool {
			cand := e.g.EnsureInstitution(x, e.g.ReviewerInstitution(e.g.EdgeTo(t)))
			if gridmath.Integral(cand.Load()) {
				return false
			}
			wi = cand
			return true
		})
		if !ok {
			return false
		}
		e.btm = i
		e.fw = floorGap(yi.Load())
		e.bw = ceilGap(yi.Load())
		e.fw = min64(e.fw, ceilGap(wi.Load()))
		e.bw = min64(e.bw, floorGap(wi.Load()))
		return true

	case pathMode && e.g.IsPaper(x) && !isSeed && !gridmath.Integral(e.g.Load(x)) &&
		yi != nil && !gridmath.Integral(yi.Load()):
		e.btm = 0
		e.fw = min64(ceilGap(e.g.Load(x)), floorGap(yi.Load()))
		e.bw = min64(floorGap(e.g.Load(x)), ceilGap(yi.Load()))
		return true
	}

	return false
}

// firstStackedFrom returns the index of the earliest stacked edge leaving v
// that also satisfies pred (ignored if nil).
func (e *Engine) firstStackedFrom(v int, pred func(t int) bool) (int, bool) {
	for i, t := range e.stack {
		if e.g.EdgeFrom(t) != v {
			continue
		}
		if pred == nil || pred(t) {
			return i, true
		}
	}
	return 0, false
}

// tightenSeedGaps further constrains fw/bw by the seed vertex's own
// fractional gaps (and its outgoing institution entry's, if the seed is a
// paper), applied only when the closing frame turns out to be the seed
// itself. The orientation here is deliberately the mirror image of the
// path-closure end (detectClosure's reviewer-path/paper-path cases): the
// seed is the other endpoint of the same augmenting path.
func (e *Engine) tightenSeedGaps(x int, zi *resid.InstEntry) {
	e.fw = min64(e.fw, floorGap(e.g.Load(x)))
	e.bw = min64(e.bw, ceilGap(e.g.Load(x)))
	if zi != nil {
		e.fw = min64(e.fw, ceilGap(zi.Load()))
		e.bw = min64(e.bw, floorGap(zi.Load()))
	}
}

// pushFlow samples a direction and applies it to every stacked edge from
// e.btm to the top of the stack, then resets the residual bounds so outer
// frames do not double-push.
func (e *Engine) pushFlow() {
	total := e.fw + e.bw
	if total <= 0 {
		e.fw, e.bw = 0, 0
		return
	}

	var delta, amount int64
	if rand.Float64() < float64(e.bw)/float64(total) {
		delta, amount = 1, e.fw
	} else {
		delta, amount = -1, e.bw
	}

	for _, t := range e.stack[e.btm:] {
		e.g.UpdateFlow(t, delta*amount)
	}

	e.fw, e.bw = 0, 0
}

func floorGap(v int64) int64 { return v - gridmath.Floor(v) }
func ceilGap(v int64) int64  { return gridmath.Ceil(v) - v }

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
