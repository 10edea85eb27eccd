package graph

import (
	"github.com/timtadh/data-structures/errors"
)

type Builder struct {
	V     Nodes
	E     Edges
	Adj   [][]int
	pairs map[[2]int]int
}

func Build(V, E int) *Builder {
	if V < 10 {
		V = 10
	}
	if E < 10 {
		E = 10
	}
	return &Builder{
		V:     make(Nodes, 0, V),
		E:     make(Edges, 0, E),
		Adj:   make([][]int, 0, V),
		pairs: make(map[[2]int]int, E),
	}
}

func (b *Builder) Build() *Graph {
	g := &Graph{
		V:   make(Nodes, len(b.V)),
		E:   make(Edges, len(b.E)),
		Adj: make([][]int, len(b.V)),
	}
	copy(g.V, b.V)
	copy(g.E, b.E)
	for i := range b.Adj {
		g.Adj[i] = make([]int, len(b.Adj[i]))
		copy(g.Adj[i], b.Adj[i])
	}
	return g
}

func (b *Builder) AddNode(typ int) *Node {
	if b == nil {
		panic("b was nil")
	}
	idx := len(b.V)
	b.V = append(b.V, Node{
		Idx:  idx,
		Type: typ,
	})
	b.Adj = append(b.Adj, make([]int, 0, 4))
	return &b.V[idx]
}

// AddEdge connects u and v. The graph must stay simple so self loops and a
// second edge between the same pair of nodes are rejected.
func (b *Builder) AddEdge(u, v *Node, typ int) (*Edge, error) {
	if u == nil || v == nil {
		return nil, errors.Errorf("edge endpoint was nil")
	}
	if u.Idx < 0 || u.Idx >= len(b.V) {
		return nil, errors.Errorf("unknown node %v", u.Idx)
	}
	if v.Idx < 0 || v.Idx >= len(b.V) {
		return nil, errors.Errorf("unknown node %v", v.Idx)
	}
	if u.Idx == v.Idx {
		return nil, errors.Errorf("self loop on node %v", u.Idx)
	}
	p := pair(u.Idx, v.Idx)
	if _, has := b.pairs[p]; has {
		return nil, errors.Errorf("duplicate edge %v-%v", u.Idx, v.Idx)
	}
	idx := len(b.E)
	b.E = append(b.E, Edge{
		Src:  u.Idx,
		Targ: v.Idx,
		Type: typ,
	})
	b.pairs[p] = idx
	b.Adj[u.Idx] = append(b.Adj[u.Idx], idx)
	b.Adj[v.Idx] = append(b.Adj[v.Idx], idx)
	return &b.E[idx], nil
}
