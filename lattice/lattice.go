package lattice

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gstump/graph"
	"github.com/timtadh/gstump/subgraph"
)

// Lattice is the pattern lattice over a graph database. The first Labeled
// graphs of the database are the labeled training graphs, the rest are
// unlabeled. Nodes cache their children once expanded, so a Lattice doubles
// as the checkpoint of a previous search.
type Lattice struct {
	Indices    *graph.Indices
	Labeled    int
	MinSupport int
	Labels     subgraph.Labels
	Debug      bool // log every expansion
	labeled    []*graph.Graph
	unlabeled  []*graph.Graph
	roots      []*Node
}

func NewLattice(labeled, unlabeled []*graph.Graph, minSupport int) *Lattice {
	all := make([]*graph.Graph, 0, len(labeled)+len(unlabeled))
	all = append(all, labeled...)
	all = append(all, unlabeled...)
	l := &Lattice{
		Indices:    graph.NewIndices(all...),
		Labeled:    len(labeled),
		MinSupport: minSupport,
		labeled:    labeled,
		unlabeled:  unlabeled,
	}
	errors.Logf("DEBUG", "indexed %v labeled and %v unlabeled graphs (%v nodes, %v edges)",
		len(labeled), len(unlabeled), l.Indices.G.NodeCount(), l.Indices.G.EdgeCount())
	return l
}

// Compatible reports whether the lattice was built over exactly these
// graphs (by identity) with the same support threshold. Only then can the
// cached nodes be reused.
func (l *Lattice) Compatible(labeled, unlabeled []*graph.Graph, minSupport int) bool {
	if l == nil || l.MinSupport != minSupport {
		return false
	}
	return sameGraphs(l.labeled, labeled) && sameGraphs(l.unlabeled, unlabeled)
}

func sameGraphs(a, b []*graph.Graph) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Roots are the single edge patterns meeting the support threshold, in
// label order. They are computed once.
func (l *Lattice) Roots() []*Node {
	if l.roots != nil {
		return l.roots
	}
	G := l.Indices.G
	byTypes := make(map[graph.Types][]int)
	for eidx := range G.E {
		e := &G.E[eidx]
		t := graph.NewTypes(G.V[e.Src].Type, G.V[e.Targ].Type, e.Type)
		if l.Indices.EdgeGraphs[t] < l.MinSupport {
			continue
		}
		byTypes[t] = append(byTypes[t], eidx)
	}
	roots := make([]*Node, 0, len(byTypes))
	for t, eidxs := range byTypes {
		b := subgraph.Build(2, 1)
		b.AddEdge(b.AddVertex(t.A), b.AddVertex(t.B), t.EdgeType)
		vord, eord := b.CanonicalPermutation()
		sg := b.BuildFromPermutation(vord, eord)
		embs := make(subgraph.Embeddings, 0, len(eidxs)*2)
		orient := func(a, b int) {
			embs = append(embs, subgraph.StartEmbedding(
				subgraph.VertexEmbedding{SgIdx: vord[0], EmbIdx: a},
			).Extend(
				subgraph.VertexEmbedding{SgIdx: vord[1], EmbIdx: b},
			))
		}
		for _, eidx := range eidxs {
			e := &G.E[eidx]
			src, targ := e.Src, e.Targ
			if G.V[src].Type != t.A {
				src, targ = targ, src
			}
			orient(src, targ)
			if t.A == t.B {
				orient(targ, src)
			}
		}
		n := newNode(l, sg, embs)
		if n.SupportCount() >= l.MinSupport {
			roots = append(roots, n)
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		return string(roots[i].SubGraph.Label()) < string(roots[j].SubGraph.Label())
	})
	l.roots = roots
	return roots
}
