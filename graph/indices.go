package graph

import (
	"github.com/timtadh/data-structures/errors"
)

// IdTypeType keys the neighbour index: (node id, edge type, neighbour type).
type IdTypeType struct {
	Id, EdgeType, NodeType int
}

// Types describes an edge by its endpoint types and its own type. A <= B
// always holds, edges being undirected.
type Types struct {
	A, B, EdgeType int
}

func NewTypes(a, b, edgeType int) Types {
	if a > b {
		a, b = b, a
	}
	return Types{A: a, B: b, EdgeType: edgeType}
}

// Indices is the disjoint union of a database of graphs with the lookup
// tables the embedding search needs. Node ids are global: the nodes of
// Graphs[i] occupy ids Offsets[i] .. Offsets[i]+NodeCount-1.
type Indices struct {
	Graphs     []*Graph
	G          *Graph
	Offsets    []int
	GraphOf    []int                // global node id -> position in Graphs
	TypeIndex  map[int][]int        // node type -> []id
	NbrIndex   map[IdTypeType][]int // (id, edge type, nbr type) -> []nbr id
	EdgeIndex  map[[2]int]int       // (min id, max id) -> edge idx in G
	EdgeGraphs map[Types]int        // edge types -> number of graphs holding one
}

func NewIndices(graphs ...*Graph) *Indices {
	V := 0
	E := 0
	for _, g := range graphs {
		V += g.NodeCount()
		E += g.EdgeCount()
	}
	b := Build(V, E)
	i := &Indices{
		Graphs:     graphs,
		Offsets:    make([]int, 0, len(graphs)),
		GraphOf:    make([]int, 0, V),
		TypeIndex:  make(map[int][]int),
		NbrIndex:   make(map[IdTypeType][]int, V),
		EdgeIndex:  make(map[[2]int]int, E),
		EdgeGraphs: make(map[Types]int),
	}
	for gid, g := range graphs {
		offset := len(b.V)
		i.Offsets = append(i.Offsets, offset)
		for _, n := range g.V {
			u := b.AddNode(n.Type)
			i.GraphOf = append(i.GraphOf, gid)
			i.TypeIndex[n.Type] = append(i.TypeIndex[n.Type], u.Idx)
		}
		seen := make(map[Types]bool)
		for _, e := range g.E {
			src := &b.V[offset+e.Src]
			targ := &b.V[offset+e.Targ]
			if _, err := b.AddEdge(src, targ, e.Type); err != nil {
				panic(errors.Errorf("graph %v was not built by a Builder: %v", gid, err))
			}
			i.NbrIndex[IdTypeType{src.Idx, e.Type, targ.Type}] = append(
				i.NbrIndex[IdTypeType{src.Idx, e.Type, targ.Type}], targ.Idx)
			i.NbrIndex[IdTypeType{targ.Idx, e.Type, src.Type}] = append(
				i.NbrIndex[IdTypeType{targ.Idx, e.Type, src.Type}], src.Idx)
			t := NewTypes(src.Type, targ.Type, e.Type)
			if !seen[t] {
				seen[t] = true
				i.EdgeGraphs[t]++
			}
		}
	}
	i.G = b.Build()
	for eidx := range i.G.E {
		e := &i.G.E[eidx]
		i.EdgeIndex[pair(e.Src, e.Targ)] = eidx
	}
	return i
}

// Degree of a global node id.
func (i *Indices) Degree(id int) int {
	return len(i.G.Adj[id])
}

func (i *Indices) NodeType(id int) int {
	return i.G.V[id].Type
}

func (i *Indices) HasEdge(u, v, edgeType int) bool {
	eidx, has := i.EdgeIndex[pair(u, v)]
	return has && i.G.E[eidx].Type == edgeType
}

// NbrsOf calls do for every neighbour of id reachable over an edge of type
// edgeType and with the node type nbrType, skipping those exclude rejects.
func (i *Indices) NbrsOf(id, edgeType, nbrType int, exclude func(int) bool, do func(int)) {
	for _, nbr := range i.NbrIndex[IdTypeType{id, edgeType, nbrType}] {
		if exclude != nil && exclude(nbr) {
			continue
		}
		do(nbr)
	}
}

// Local converts a global node id to (graph position, node idx in graph).
func (i *Indices) Local(id int) (gid, idx int) {
	gid = i.GraphOf[id]
	return gid, id - i.Offsets[gid]
}
