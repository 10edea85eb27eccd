package subgraph

import (
	"fmt"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// dfsEdge is one entry of a DFS code. from and to are discovery indices.
type dfsEdge struct {
	from, to                   int
	fromType, edgeType, toType int
}

func (a *dfsEdge) backward() bool {
	return a.from > a.to
}

// firstLess orders candidates for the first code entry.
func (a *dfsEdge) firstLess(b *dfsEdge) bool {
	if a.fromType != b.fromType {
		return a.fromType < b.fromType
	}
	if a.edgeType != b.edgeType {
		return a.edgeType < b.edgeType
	}
	return a.toType < b.toType
}

// less orders two rightmost extensions of the same code prefix. Backward
// edges come before forward edges, backward edges are ordered by target,
// forward edges prefer the deepest source on the rightmost path.
func (a *dfsEdge) less(b *dfsEdge) bool {
	ab, bb := a.backward(), b.backward()
	if ab && !bb {
		return true
	} else if !ab && bb {
		return false
	} else if ab && bb {
		if a.to != b.to {
			return a.to < b.to
		}
		return a.edgeType < b.edgeType
	}
	if a.from != b.from {
		return a.from > b.from
	}
	if a.edgeType != b.edgeType {
		return a.edgeType < b.edgeType
	}
	return a.toType < b.toType
}

// dfsState is one way of walking the pattern which produces the smallest
// code prefix found so far.
type dfsState struct {
	order []int  // discovery idx -> builder vertex
	disc  []int  // builder vertex -> discovery idx or -1
	used  []bool // builder edge -> already in the code
	eord  []int  // code position -> builder edge
	rpath []int  // discovery idxs on the rightmost path
}

func newDFSState(b *Builder, u, v, eidx int) *dfsState {
	s := &dfsState{
		order: make([]int, 0, len(b.V)),
		disc:  make([]int, len(b.V)),
		used:  make([]bool, len(b.E)),
		eord:  make([]int, 0, len(b.E)),
		rpath: make([]int, 0, len(b.V)),
	}
	for i := range s.disc {
		s.disc[i] = -1
	}
	s.order = append(s.order, u, v)
	s.disc[u] = 0
	s.disc[v] = 1
	s.used[eidx] = true
	s.eord = append(s.eord, eidx)
	s.rpath = append(s.rpath, 0, 1)
	return s
}

func (s *dfsState) copy() *dfsState {
	c := &dfsState{
		order: make([]int, len(s.order), cap(s.order)),
		disc:  make([]int, len(s.disc)),
		used:  make([]bool, len(s.used)),
		eord:  make([]int, len(s.eord), cap(s.eord)),
		rpath: make([]int, len(s.rpath), cap(s.rpath)),
	}
	copy(c.order, s.order)
	copy(c.disc, s.disc)
	copy(c.used, s.used)
	copy(c.eord, s.eord)
	copy(c.rpath, s.rpath)
	return c
}

func (s *dfsState) key() string {
	return fmt.Sprint(s.order)
}

func (s *dfsState) extensions(b *Builder, adj [][]int, do func(cand *dfsEdge, w, eidx int)) {
	other := func(u, eidx int) int {
		if b.E[eidx].Src == u {
			return b.E[eidx].Targ
		}
		return b.E[eidx].Src
	}
	rm := s.rpath[len(s.rpath)-1]
	rmv := s.order[rm]
	for _, eidx := range adj[rmv] {
		w := other(rmv, eidx)
		if s.used[eidx] || s.disc[w] < 0 {
			continue
		}
		do(&dfsEdge{
			from:     rm,
			to:       s.disc[w],
			fromType: b.V[rmv].Type,
			edgeType: b.E[eidx].Type,
			toType:   b.V[w].Type,
		}, w, eidx)
	}
	n := len(s.order)
	for p := len(s.rpath) - 1; p >= 0; p-- {
		u := s.order[s.rpath[p]]
		for _, eidx := range adj[u] {
			w := other(u, eidx)
			if s.used[eidx] || s.disc[w] >= 0 {
				continue
			}
			do(&dfsEdge{
				from:     s.rpath[p],
				to:       n,
				fromType: b.V[u].Type,
				edgeType: b.E[eidx].Type,
				toType:   b.V[w].Type,
			}, w, eidx)
		}
	}
}

func (s *dfsState) extend(cand *dfsEdge, w, eidx int) *dfsState {
	c := s.copy()
	c.used[eidx] = true
	c.eord = append(c.eord, eidx)
	if cand.backward() {
		return c
	}
	c.disc[w] = len(c.order)
	c.order = append(c.order, w)
	for p, d := range c.rpath {
		if d == cand.from {
			c.rpath = c.rpath[:p+1]
			break
		}
	}
	c.rpath = append(c.rpath, cand.to)
	return c
}

// CanonicalPermutation computes the minimum DFS code of the pattern and
// returns the vertex order (builder idx -> canonical idx) and edge order
// (builder edge -> code position) it induces. Every walk producing the
// smallest prefix is kept, so automorphic starting points all get explored.
func (b *Builder) CanonicalPermutation() (vord, eord []int) {
	if len(b.E) == 0 {
		if len(b.V) > 1 {
			panic(errors.Errorf("canonical form of a disconnected pattern %v", b.V))
		}
		return make([]int, len(b.V)), []int{}
	}
	adj := b.adjacency()
	var best *dfsEdge
	states := make([]*dfsState, 0, 2*len(b.E))
	for eidx := range b.E {
		e := &b.E[eidx]
		for _, o := range [][2]int{{e.Src, e.Targ}, {e.Targ, e.Src}} {
			cand := &dfsEdge{
				from:     0,
				to:       1,
				fromType: b.V[o[0]].Type,
				edgeType: e.Type,
				toType:   b.V[o[1]].Type,
			}
			if best != nil && best.firstLess(cand) {
				continue
			}
			if best == nil || cand.firstLess(best) {
				best = cand
				states = states[:0]
			}
			states = append(states, newDFSState(b, o[0], o[1], eidx))
		}
	}
	for len(states[0].eord) < len(b.E) {
		var best *dfsEdge
		next := make([]*dfsState, 0, len(states))
		seen := make(map[string]bool, len(states))
		for _, s := range states {
			s.extensions(b, adj, func(cand *dfsEdge, w, eidx int) {
				if best != nil && best.less(cand) {
					return
				}
				if best == nil || cand.less(best) {
					best = cand
					next = next[:0]
					seen = make(map[string]bool, len(states))
				}
				n := s.extend(cand, w, eidx)
				if k := n.key() + fmt.Sprint(n.eord); !seen[k] {
					seen[k] = true
					next = append(next, n)
				}
			})
		}
		if len(next) == 0 {
			panic(errors.Errorf("canonical form of a disconnected pattern %v %v", b.V, b.E))
		}
		states = next
	}
	s := states[0]
	if len(s.order) != len(b.V) {
		panic(errors.Errorf("canonical form of a disconnected pattern %v %v", b.V, b.E))
	}
	vord = make([]int, len(b.V))
	copy(vord, s.disc)
	eord = make([]int, len(b.E))
	for pos, eidx := range s.eord {
		eord[eidx] = pos
	}
	return vord, eord
}
