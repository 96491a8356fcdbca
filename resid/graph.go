package resid

import "github.com/revpap/bvnround/gridmath"

// addHalfEdge appends a new half-edge to the arena and prepends it to
// from's adjacency list, so iteration visits edges in insertion-reversed
// order.
func (g *Graph) addHalfEdge(from, to int, flow int64) int {
	idx := len(g.edges)
	g.edges = append(g.edges, halfEdge{from: from, to: to, flow: flow, next: g.verts[from].head})
	g.verts[from].head = idx

	return idx
}

// removeEdge unlinks half-edge e from its tail's adjacency list. The arena
// slot is left in place; only the partner half of the pair and the
// live-pair counter are the caller's responsibility (see canonicalize).
func (g *Graph) removeEdge(e int) {
	from := g.edges[e].from
	if g.verts[from].head == e {
		g.verts[from].head = g.edges[e].next
		return
	}

	cur := g.verts[from].head
	for g.edges[cur].next != e {
		cur = g.edges[cur].next
	}
	g.edges[cur].next = g.edges[e].next
}

// canonicalize removes the pair (e, e^1) once the forward half-edge has
// reached an integral flow (0 or Grid) — it no longer carries a fractional
// assignment and the driver loop never needs to visit it again.
func (g *Graph) canonicalize(e int) {
	if g.edges[e].flow != 0 && g.edges[e].flow != gridmath.Grid {
		return
	}
	g.removeEdge(e)
	g.removeEdge(e ^ 1)
	g.livePairs--
}

// findInstitution returns paper p's institution entry for inst, or nil if
// no flow has ever arrived from that institution.
func (g *Graph) findInstitution(p, inst int) *InstEntry {
	for ie := g.verts[p].instHead; ie != nil; ie = ie.next {
		if ie.inst == inst {
			return ie
		}
	}
	return nil
}

// FindInstitution is the exported form of findInstitution, used by the
// search engine to look up the institution entry of an incoming edge.
func (g *Graph) FindInstitution(p, inst int) *InstEntry { return g.findInstitution(p, inst) }

// EnsureInstitution returns paper p's institution entry for inst, creating
// one with zero load if this is the first flow seen from that institution.
// Entries are never removed once created, even if their load returns to
// zero.
func (g *Graph) EnsureInstitution(p, inst int) *InstEntry {
	if ie := g.findInstitution(p, inst); ie != nil {
		return ie
	}

	ie := &InstEntry{inst: inst, next: g.verts[p].instHead}
	g.verts[p].instHead = ie

	return ie
}

func (g *Graph) ciAdd(p, inst int, w int64) {
	g.EnsureInstitution(p, inst).load += w
}

// UpdateFlow applies flow change delta to forward half-edge e: f[e] -= delta,
// f[e^1] += delta, tightens the endpoint loads, adjusts the affected
// paper-institution entry, and canonicalizes the pair if it has become
// integral. This is the sole mutator of flow in the engine — the search
// component computes delta and amount, this method does the bookkeeping.
func (g *Graph) UpdateFlow(e int, delta int64) {
	partner := e ^ 1
	g.edges[e].flow -= delta
	g.edges[partner].flow += delta

	u, v := g.edges[e].from, g.edges[e].to
	g.verts[u].load -= delta
	g.verts[v].load += delta

	if g.IsPaper(v) {
		g.ciAdd(v, g.ReviewerInstitution(u), -delta)
	} else {
		g.ciAdd(u, g.ReviewerInstitution(v), delta)
	}

	g.canonicalize(e)
}

// AddAssignment records an initial fractional assignment of flow z between
// reviewer and paper: it allocates the forward/backward half-edge pair,
// updates both vertices' loads and the paper's institution entry, and
// canonicalizes immediately if z is already integral. z must be > 0; the
// caller (bvnround.Round) skips zero-flow cells entirely rather than
// allocating a pair that starts out already canonical.
func (g *Graph) AddAssignment(reviewer, paper int, z int64) {
	g.addHalfEdge(reviewer, paper, z)
	bwd := g.addHalfEdge(paper, reviewer, gridmath.Grid-z)
	g.livePairs++

	g.verts[reviewer].load += z
	g.verts[paper].load -= z
	g.ciAdd(paper, g.ReviewerInstitution(reviewer), z)

	g.canonicalize(bwd)
}

// FindFractionalEdge returns a live, unvisited half-edge out of x, or
// noEdge if none is available, applying the edge selection policy:
//
//   - x a reviewer: inst is ignored; any live, unvisited outgoing edge.
//   - x a paper, inst != 0: an edge whose endpoint's institution is exactly
//     inst (the paper must leave through the same institution it arrived
//     from, because that institution's load is already integral).
//   - x a paper, inst == 0: scan institutions with fractional load in list
//     order, returning the first live, unvisited edge belonging to one of
//     them.
func (g *Graph) FindFractionalEdge(x, inst int) int {
	if g.IsReviewer(x) {
		for e := g.verts[x].head; e != noEdge; e = g.edges[e].next {
			if !g.edges[e].visited {
				return e
			}
		}
		return noEdge
	}

	if inst != 0 {
		for e := g.verts[x].head; e != noEdge; e = g.edges[e].next {
			if !g.edges[e].visited && g.ReviewerInstitution(g.edges[e].to) == inst {
				return e
			}
		}
		return noEdge
	}

	for ie := g.verts[x].instHead; ie != nil; ie = ie.next {
		if gridmath.Integral(ie.load) {
			continue
		}
		for e := g.verts[x].head; e != noEdge; e = g.edges[e].next {
			if !g.edges[e].visited && g.ReviewerInstitution(g.edges[e].to) == ie.inst {
				return e
			}
		}
	}

	return noEdge
}

// ForEachAssignment calls fn once per half-edge pair ever created (live or
// already canonicalized), passing the reviewer, the paper, and the final
// flow recorded on the reviewer->paper direction. bvnround.Round uses this
// after the driver loop finishes to read off the integral assignment: a flow of
// gridmath.Grid means that reviewer-paper cell rounded to 1.
func (g *Graph) ForEachAssignment(fn func(reviewer, paper int, flow int64)) {
	for e := 2; e < len(g.edges); e++ {
		he := g.edges[e]
		if he.from < he.to {
			fn(he.from, he.to, he.flow)
		}
	}
}
