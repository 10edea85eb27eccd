package subgraph

import (
	"fmt"
	"strings"
)

import (
	"github.com/timtadh/gstump/graph"
)

type Embeddings []*Embedding

// Embedding maps pattern vertices to global node ids of a graph.Indices. It
// is a linked list so an extended embedding shares its parent's prefix.
type Embedding struct {
	VertexEmbedding
	Prev *Embedding
}

type VertexEmbedding struct {
	SgIdx, EmbIdx int
}

func StartEmbedding(v VertexEmbedding) *Embedding {
	return &Embedding{VertexEmbedding: v, Prev: nil}
}

func (emb *Embedding) Extend(v VertexEmbedding) *Embedding {
	return &Embedding{VertexEmbedding: v, Prev: emb}
}

// Translate renumbers the pattern side of the embedding.
func (emb *Embedding) Translate(vord []int) *Embedding {
	if emb == nil {
		return nil
	}
	return &Embedding{
		VertexEmbedding: VertexEmbedding{
			SgIdx:  vord[emb.SgIdx],
			EmbIdx: emb.EmbIdx,
		},
		Prev: emb.Prev.Translate(vord),
	}
}

func (embs Embeddings) Translate(vord []int) Embeddings {
	translated := make(Embeddings, 0, len(embs))
	for _, emb := range embs {
		translated = append(translated, emb.Translate(vord))
	}
	return translated
}

// Slice gives the node id of every pattern vertex (-1 if unmapped).
func (emb *Embedding) Slice(V int) []int {
	ids := make([]int, V)
	for i := range ids {
		ids[i] = -1
	}
	for e := emb; e != nil; e = e.Prev {
		ids[e.SgIdx] = e.EmbIdx
	}
	return ids
}

// Graph is the position (in indices.Graphs) of the graph the embedding
// lies in.
func (emb *Embedding) Graph(indices *graph.Indices) int {
	return indices.GraphOf[emb.EmbIdx]
}

// Graphs lists the distinct graph positions the embeddings lie in, in
// ascending order.
func (embs Embeddings) Graphs(indices *graph.Indices) []int {
	has := make([]bool, len(indices.Graphs))
	count := 0
	for _, emb := range embs {
		gid := emb.Graph(indices)
		if !has[gid] {
			has[gid] = true
			count++
		}
	}
	gids := make([]int, 0, count)
	for gid, in := range has {
		if in {
			gids = append(gids, gid)
		}
	}
	return gids
}

func (emb *Embedding) HasId(id int) bool {
	for c := emb; c != nil; c = c.Prev {
		if id == c.EmbIdx {
			return true
		}
	}
	return false
}

func (emb *Embedding) IdOf(sgIdx int) int {
	for c := emb; c != nil; c = c.Prev {
		if c.SgIdx == sgIdx {
			return c.EmbIdx
		}
	}
	return -1
}

// SgIdxOf is the pattern vertex mapped onto node id, or -1.
func (emb *Embedding) SgIdxOf(id int) int {
	for c := emb; c != nil; c = c.Prev {
		if c.EmbIdx == id {
			return c.SgIdx
		}
	}
	return -1
}

func (emb *Embedding) String() string {
	items := make([]string, 0, 10)
	for e := emb; e != nil; e = e.Prev {
		items = append(items, fmt.Sprintf("<sg-idx: %v, emb-idx: %v>", e.SgIdx, e.EmbIdx))
	}
	return fmt.Sprintf("(%v)", strings.Join(items, ", "))
}
