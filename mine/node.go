package mine

import (
	"fmt"
)

import (
	"github.com/timtadh/gstump/lattice"
)

// SearchNode is a lattice node with its score under the current weights.
type SearchNode struct {
	Node      *lattice.Node
	Graphs    []int // labeled graphs holding the pattern
	Unlabeled []int // unlabeled graphs holding the pattern
	score
}

func newSearchNode(n *lattice.Node, obj *objective) *SearchNode {
	labeled, unlabeled := n.Support()
	sn := &SearchNode{
		Node:      n,
		Graphs:    lattice.Ints(labeled),
		Unlabeled: lattice.Ints(unlabeled),
	}
	sn.score = obj.score(sn.Graphs)
	return sn
}

func (s *SearchNode) String() string {
	return fmt.Sprintf("%6.5v (%6.5v) %v", s.Gain, s.Bound, s.Node)
}
