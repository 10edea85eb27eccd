package lattice

import (
	"fmt"
)

import (
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/gstump/subgraph"
)

type Node struct {
	l               *Lattice
	SubGraph        *subgraph.SubGraph
	Embeddings      subgraph.Embeddings
	unsupportedExts map[subgraph.Extension]bool
	kids            []*Node
	expanded        bool
}

func newNode(l *Lattice, sg *subgraph.SubGraph, embs subgraph.Embeddings) *Node {
	return &Node{
		l:               l,
		SubGraph:        sg,
		Embeddings:      embs,
		unsupportedExts: make(map[subgraph.Extension]bool),
	}
}

func (n *Node) addUnsupportedExts(unsup map[subgraph.Extension]bool, V int, vord []int) {
	for u := range unsup {
		n.unsupportedExts[*u.Translate(V, vord)] = true
	}
}

func (n *Node) String() string {
	if n.l.Labels != nil {
		return fmt.Sprintf("<Node %v>", n.SubGraph.Pretty(n.l.Labels))
	}
	return fmt.Sprintf("<Node %v>", n.SubGraph)
}

func (n *Node) Label() []byte {
	return n.SubGraph.Label()
}

func (n *Node) Edges() int {
	return len(n.SubGraph.E)
}

// Support splits the graphs the embeddings lie in into labeled graph
// positions and unlabeled graph positions (each counted from 0). It is
// recomputed from the embeddings on every call.
func (n *Node) Support() (labeled, unlabeled *set.SortedSet) {
	gids := n.Embeddings.Graphs(n.l.Indices)
	labeled = set.NewSortedSet(len(gids))
	unlabeled = set.NewSortedSet(len(gids))
	for _, gid := range gids {
		if gid < n.l.Labeled {
			labeled.Add(types.Int(gid))
		} else {
			unlabeled.Add(types.Int(gid - n.l.Labeled))
		}
	}
	return labeled, unlabeled
}

// SupportCount is the number of graphs, labeled or not, holding the
// pattern.
func (n *Node) SupportCount() int {
	return len(n.Embeddings.Graphs(n.l.Indices))
}

// Expanded reports whether the children of the node are cached.
func (n *Node) Expanded() bool {
	return n.expanded
}

// Children are the supported one edge extensions of the node, one per
// canonical pattern. They are computed on first use and cached.
func (n *Node) Children() (nodes []*Node, err error) {
	if n.expanded {
		return n.kids, nil
	}
	kids, err := n.findChildren()
	if err != nil {
		return nil, err
	}
	n.kids = kids
	n.expanded = true
	return kids, nil
}

// Ints lists the members of a set of graph positions in order.
func Ints(s *set.SortedSet) []int {
	ids := make([]int, 0, s.Size())
	for x, next := s.Items()(); next != nil; x, next = next() {
		ids = append(ids, int(x.(types.Int)))
	}
	return ids
}
