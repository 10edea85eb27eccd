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

func (n *Node) findChildren() (nodes []*Node, err error) {
	if n.l.Debug {
		errors.Logf("DEBUG", "findChildren %v", n)
	}
	unsupported := make(map[subgraph.Extension]bool, len(n.unsupportedExts))
	for ext := range n.unsupportedExts {
		unsupported[ext] = true
	}
	exts := n.extensions(unsupported)
	keys := make([]subgraph.Extension, 0, len(exts))
	for ext := range exts {
		keys = append(keys, ext)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].ExtLess(&keys[j])
	})
	vords := make([][]int, 0, 10)
	builder := n.SubGraph.Builder()
	seen := make(map[string]bool)
	for i := range keys {
		ext := keys[i]
		embs := exts[ext]
		if len(embs.Graphs(n.l.Indices)) < n.l.MinSupport {
			unsupported[ext] = true
			continue
		}
		b := builder.Copy()
		_, _, err := b.Extend(&ext)
		if err != nil {
			return nil, err
		}
		vord, eord := b.CanonicalPermutation()
		extended := b.BuildFromPermutation(vord, eord)
		label := string(extended.Label())
		if seen[label] {
			continue
		}
		seen[label] = true
		nodes = append(nodes, newNode(n.l, extended, embs.Translate(vord)))
		vords = append(vords, vord)
	}
	for i, c := range nodes {
		c.addUnsupportedExts(unsupported, len(n.SubGraph.V), vords[i])
	}
	return nodes, nil
}

// extensions groups every way of growing an embedding by one database edge
// by the pattern extension it represents. New vertex extensions carry the
// grown embedding, closing edges the embedding itself.
func (n *Node) extensions(unsupported map[subgraph.Extension]bool) map[subgraph.Extension]subgraph.Embeddings {
	G := n.l.Indices.G
	newIdx := len(n.SubGraph.V)
	exts := make(map[subgraph.Extension]subgraph.Embeddings)
	for _, embedding := range n.Embeddings {
		for emb := embedding; emb != nil; emb = emb.Prev {
			u := emb.EmbIdx
			for _, eidx := range G.Adj[u] {
				e := &G.E[eidx]
				v := e.Other(u)
				tu := G.V[u].Type
				tv := G.V[v].Type
				if n.l.Indices.EdgeGraphs[graph.NewTypes(tu, tv, e.Type)] < n.l.MinSupport {
					continue
				}
				vIdx := embedding.SgIdxOf(v)
				if vIdx >= 0 {
					if emb.SgIdx > vIdx {
						// seen from the other endpoint
						continue
					}
					ext := subgraph.NewExt(
						subgraph.Vertex{Idx: emb.SgIdx, Type: tu},
						subgraph.Vertex{Idx: vIdx, Type: tv},
						e.Type)
					if n.SubGraph.HasExtension(ext) || unsupported[*ext] {
						continue
					}
					exts[*ext] = append(exts[*ext], embedding)
				} else {
					ext := subgraph.NewExt(
						subgraph.Vertex{Idx: emb.SgIdx, Type: tu},
						subgraph.Vertex{Idx: newIdx, Type: tv},
						e.Type)
					if unsupported[*ext] {
						continue
					}
					exts[*ext] = append(exts[*ext], embedding.Extend(
						subgraph.VertexEmbedding{SgIdx: newIdx, EmbIdx: v}))
				}
			}
		}
	}
	return exts
}
