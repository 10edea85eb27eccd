package subgraph

import (
	"github.com/timtadh/data-structures/errors"
)

type Builder struct {
	V Vertices
	E Edges
}

func Build(V, E int) *Builder {
	return &Builder{
		V: make([]Vertex, 0, V),
		E: make([]Edge, 0, E),
	}
}

// Mutates the current builder and returns it
func (b *Builder) From(sg *SubGraph) *Builder {
	if len(b.V) != 0 || len(b.E) != 0 {
		panic("builder must be empty to use From")
	}
	for i := range sg.V {
		b.AddVertex(sg.V[i].Type)
	}
	for i := range sg.E {
		b.AddEdge(&b.V[sg.E[i].Src], &b.V[sg.E[i].Targ], sg.E[i].Type)
	}
	return b
}

func (b *Builder) Copy() *Builder {
	V := make([]Vertex, len(b.V), cap(b.V))
	E := make([]Edge, len(b.E), cap(b.E))
	copy(V, b.V)
	copy(E, b.E)
	return &Builder{
		V: V,
		E: E,
	}
}

func (b *Builder) AddVertex(typ int) *Vertex {
	b.V = append(b.V, Vertex{
		Idx:  len(b.V),
		Type: typ,
	})
	return &b.V[len(b.V)-1]
}

func (b *Builder) AddEdge(src, targ *Vertex, typ int) *Edge {
	b.E = append(b.E, Edge{
		Src:  src.Idx,
		Targ: targ.Idx,
		Type: typ,
	})
	return &b.E[len(b.E)-1]
}

// Extend adds the edge described by e. At most one endpoint may be new
// (Idx == len(b.V)), otherwise the pattern would be disconnected.
func (b *Builder) Extend(e *Extension) (newe *Edge, newv *Vertex, err error) {
	if e.Source.Idx > len(b.V) {
		return nil, nil, errors.Errorf("Source.Idx %v outside of |V| %v", e.Source.Idx, len(b.V))
	} else if e.Target.Idx > len(b.V) {
		return nil, nil, errors.Errorf("Target.Idx %v outside of |V| %v", e.Target.Idx, len(b.V))
	} else if e.Source.Idx == len(b.V) && e.Target.Idx == len(b.V) {
		return nil, nil, errors.Errorf("Only one new vertex allowed (Extension would create a disconnected graph)")
	} else if e.Source.Idx == e.Target.Idx {
		return nil, nil, errors.Errorf("Extension %v is a self loop", e)
	}
	var src *Vertex = &e.Source
	var targ *Vertex = &e.Target
	if e.Source.Idx == len(b.V) {
		src = b.AddVertex(e.Source.Type)
		newv = src
	} else if e.Target.Idx == len(b.V) {
		targ = b.AddVertex(e.Target.Type)
		newv = targ
	}
	newe = b.AddEdge(src, targ, e.Type)
	return newe, newv, nil
}

func (b *Builder) adjacency() [][]int {
	adj := make([][]int, len(b.V))
	for i := range b.E {
		e := &b.E[i]
		adj[e.Src] = append(adj[e.Src], i)
		adj[e.Targ] = append(adj[e.Targ], i)
	}
	return adj
}

func (b *Builder) Connected() bool {
	if len(b.V) <= 1 {
		return true
	}
	adj := b.adjacency()
	visited := make([]bool, len(b.V))
	stack := make([]int, 0, len(b.V))
	stack = append(stack, 0)
	visited[0] = true
	count := 1
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, eidx := range adj[u] {
			e := &b.E[eidx]
			v := e.Src
			if v == u {
				v = e.Targ
			}
			if !visited[v] {
				visited[v] = true
				count++
				stack = append(stack, v)
			}
		}
	}
	return count == len(b.V)
}

// Build canonicalizes the pattern. It panics if the pattern is not
// connected.
func (b *Builder) Build() *SubGraph {
	return b.BuildFromPermutation(b.CanonicalPermutation())
}

// BuildFromPermutation places builder vertex i at vord[i] and builder edge
// j at eord[j]. Edges are stored with Src < Targ.
func (b *Builder) BuildFromPermutation(vord, eord []int) *SubGraph {
	pat := &SubGraph{
		V:   make([]Vertex, len(b.V)),
		E:   make([]Edge, len(b.E)),
		Adj: make([][]int, len(b.V)),
	}
	for i, j := range vord {
		pat.V[j].Idx = j
		pat.V[j].Type = b.V[i].Type
		pat.Adj[j] = make([]int, 0, 4)
	}
	for i, j := range eord {
		src := vord[b.E[i].Src]
		targ := vord[b.E[i].Targ]
		if src > targ {
			src, targ = targ, src
		}
		pat.E[j].Src = src
		pat.E[j].Targ = targ
		pat.E[j].Type = b.E[i].Type
	}
	for j := range pat.E {
		pat.Adj[pat.E[j].Src] = append(pat.Adj[pat.E[j].Src], j)
		pat.Adj[pat.E[j].Targ] = append(pat.Adj[pat.E[j].Targ], j)
	}
	return pat
}
