package subgraph

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gstump/graph"
)

type EmbIterator func(bool) (*Embedding, EmbIterator)

// Embeds reports whether sg is subgraph isomorphic to g: there is an
// injective map of the pattern's vertices onto g's nodes preserving node
// types, edge types and adjacency.
func Embeds(sg *SubGraph, g *graph.Graph) bool {
	return sg.EmbeddedIn(graph.NewIndices(g))
}

func (sg *SubGraph) EmbeddedIn(indices *graph.Indices) bool {
	for _, next := sg.IterEmbeddings(indices, nil)(false); next != nil; _, next = next(true) {
		return true
	}
	return false
}

// SupportIn lists (ascending) the positions of the graphs in indices which
// contain the pattern. Once a graph is known to hold the pattern the rest
// of its partial embeddings are pruned.
func (sg *SubGraph) SupportIn(indices *graph.Indices) []int {
	found := make([]bool, len(indices.Graphs))
	prune := func(emb *Embedding) bool {
		return found[indices.GraphOf[emb.EmbIdx]]
	}
	for emb, next := sg.IterEmbeddings(indices, prune)(false); next != nil; emb, next = next(false) {
		found[indices.GraphOf[emb.EmbIdx]] = true
	}
	gids := make([]int, 0, len(indices.Graphs))
	for gid, has := range found {
		if has {
			gids = append(gids, gid)
		}
	}
	return gids
}

// IterEmbeddings does a backtracking search for every embedding of sg in
// indices. prune may cut a partial embedding. The pattern must be
// connected.
func (sg *SubGraph) IterEmbeddings(indices *graph.Indices, prune func(*Embedding) bool) (ei EmbIterator) {
	if len(sg.V) == 0 {
		ei = func(bool) (*Embedding, EmbIterator) {
			return nil, nil
		}
		return ei
	}
	if !sg.Connected() {
		panic(errors.Errorf("cannot search for embeddings of disconnected pattern %v", sg))
	}
	type entry struct {
		ids *Embedding
		eid int
	}
	pop := func(stack []entry) (entry, []entry) {
		return stack[len(stack)-1], stack[0 : len(stack)-1]
	}
	startIdx := sg.mostConnected()
	chain := sg.edgeChain(startIdx)
	vembs := sg.startEmbeddings(indices, startIdx)
	stack := make([]entry, 0, len(vembs)*2)
	for i := len(vembs) - 1; i >= 0; i-- {
		stack = append(stack, entry{vembs[i], 0})
	}

	ei = func(stop bool) (*Embedding, EmbIterator) {
		for !stop && len(stack) > 0 {
			var i entry
			i, stack = pop(stack)
			if prune != nil && prune(i.ids) {
				continue
			}
			if i.eid >= len(chain) {
				return i.ids, ei
			}
			sg.extendEmbedding(indices, i.ids, &sg.E[chain[i.eid]], func(ext *Embedding) {
				stack = append(stack, entry{ext, i.eid + 1})
			})
		}
		return nil, nil
	}
	return ei
}

func (sg *SubGraph) mostConnected() int {
	arg := 0
	for i := range sg.V {
		if len(sg.Adj[i]) > len(sg.Adj[arg]) {
			arg = i
		}
	}
	return arg
}

func (sg *SubGraph) startEmbeddings(indices *graph.Indices, startIdx int) []*Embedding {
	typ := sg.V[startIdx].Type
	deg := sg.Degree(startIdx)
	embs := make([]*Embedding, 0, len(indices.TypeIndex[typ]))
	for _, id := range indices.TypeIndex[typ] {
		if indices.Degree(id) < deg {
			continue
		}
		embs = append(embs, StartEmbedding(VertexEmbedding{EmbIdx: id, SgIdx: startIdx}))
	}
	return embs
}

// edgeChain orders the edges breadth first from startIdx so that every edge
// has at least one endpoint mapped by the time the search reaches it.
func (sg *SubGraph) edgeChain(startIdx int) []int {
	edges := make([]int, 0, len(sg.E))
	added := make([]bool, len(sg.E))
	seen := make([]bool, len(sg.V))
	queue := make([]int, 0, len(sg.V))
	queue = append(queue, startIdx)
	seen[startIdx] = true
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range sg.Adj[u] {
			if added[e] {
				continue
			}
			edges = append(edges, e)
			added[e] = true
			v := sg.E[e].Src
			if v == u {
				v = sg.E[e].Targ
			}
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	if len(edges) != len(sg.E) {
		panic("assert-fail: len(edges) != len(sg.E)")
	}
	return edges
}

func (sg *SubGraph) extendEmbedding(indices *graph.Indices, cur *Embedding, e *Edge, do func(*Embedding)) {
	srcId := cur.IdOf(e.Src)
	targId := cur.IdOf(e.Targ)
	if srcId == -1 && targId == -1 {
		panic("src and targ == -1. Which means the edge chain was not connected.")
	} else if srcId != -1 && targId != -1 {
		if indices.HasEdge(srcId, targId, e.Type) {
			do(cur)
		}
		return
	}
	mapped, newIdx := srcId, e.Targ
	if srcId == -1 {
		mapped, newIdx = targId, e.Src
	}
	deg := sg.Degree(newIdx)
	indices.NbrsOf(mapped, e.Type, sg.V[newIdx].Type, cur.HasId, func(id int) {
		if indices.Degree(id) >= deg {
			do(cur.Extend(VertexEmbedding{SgIdx: newIdx, EmbIdx: id}))
		}
	})
}
