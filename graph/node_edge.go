package graph

import (
	"fmt"
)

// Node is an atom (or any typed vertex). Type is a compact code handed out
// by Labels.
type Node struct {
	Idx, Type int
}

// Edge is an undirected bond. Src and Targ only record the orientation the
// edge was added with.
type Edge struct {
	Src, Targ, Type int
}

type Nodes []Node
type Edges []Edge

func (n *Node) String() string {
	return fmt.Sprintf("<Node %d %d>", n.Idx, n.Type)
}

func (e *Edge) String() string {
	return fmt.Sprintf("<Edge %d-%d %d>", e.Src, e.Targ, e.Type)
}

// Other returns the endpoint of e which is not u.
func (e *Edge) Other(u int) int {
	if e.Src == u {
		return e.Targ
	}
	return e.Src
}

func pair(u, v int) [2]int {
	if u > v {
		return [2]int{v, u}
	}
	return [2]int{u, v}
}
