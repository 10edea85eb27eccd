package subgraph

import (
	"encoding/binary"
	"fmt"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gstump/graph"
)

type Labels interface {
	Label(int) string
}

// SubGraph is a connected pattern in canonical form: its vertices are
// numbered in minimum DFS code discovery order and its edges are listed in
// code order with Src < Targ. Two isomorphic patterns therefore have equal
// V, E and Label.
type SubGraph struct {
	V          Vertices
	E          Edges
	Adj        [][]int
	labelCache []byte
}

type Vertices []Vertex
type Edges []Edge

type Vertex struct {
	Idx  int
	Type int
}

type Edge struct {
	Src, Targ, Type int
}

func EmptySubGraph() *SubGraph {
	return &SubGraph{
		V:   make(Vertices, 0),
		E:   make(Edges, 0),
		Adj: make([][]int, 0),
	}
}

// FromGraph canonicalizes a whole graph into a pattern. The graph must be
// connected.
func FromGraph(g *graph.Graph) *SubGraph {
	b := Build(g.NodeCount(), g.EdgeCount())
	for i := range g.V {
		b.AddVertex(g.V[i].Type)
	}
	for i := range g.E {
		b.AddEdge(&b.V[g.E[i].Src], &b.V[g.E[i].Targ], g.E[i].Type)
	}
	return b.Build()
}

// AsGraph turns the pattern back into a plain graph.
func (sg *SubGraph) AsGraph() *graph.Graph {
	b := graph.Build(len(sg.V), len(sg.E))
	for _, v := range sg.V {
		b.AddNode(v.Type)
	}
	for _, e := range sg.E {
		if _, err := b.AddEdge(&b.V[e.Src], &b.V[e.Targ], e.Type); err != nil {
			panic(err)
		}
	}
	return b.Build()
}

func (sg *SubGraph) Builder() *Builder {
	if sg == nil {
		return Build(1, 2)
	}
	return Build(len(sg.V)+1, len(sg.E)+1).From(sg)
}

// Validate checks that the vertices are numbered 0..|V|-1 and that every
// edge joins two distinct existing vertices.
func (sg *SubGraph) Validate() error {
	for i := range sg.V {
		if sg.V[i].Idx != i {
			return errors.Errorf("vertex %v has Idx %v", i, sg.V[i].Idx)
		}
	}
	for i, e := range sg.E {
		if e.Src < 0 || e.Src >= len(sg.V) || e.Targ < 0 || e.Targ >= len(sg.V) {
			return errors.Errorf("edge %v (%v, %v) outside of |V| %v", i, e.Src, e.Targ, len(sg.V))
		}
		if e.Src == e.Targ {
			return errors.Errorf("edge %v is a self loop on %v", i, e.Src)
		}
	}
	return nil
}

func (sg *SubGraph) Degree(idx int) int {
	return len(sg.Adj[idx])
}

func (sg *SubGraph) Connected() bool {
	return sg.Builder().Connected()
}

// HasEdge reports whether the pattern has an edge of type typ between u
// and v (in either orientation).
func (sg *SubGraph) HasEdge(u, v, typ int) bool {
	for _, eidx := range sg.Adj[u] {
		e := &sg.E[eidx]
		if ((e.Src == u && e.Targ == v) || (e.Src == v && e.Targ == u)) && e.Type == typ {
			return true
		}
	}
	return false
}

func LoadSubGraph(label []byte) (*SubGraph, error) {
	sg := new(SubGraph)
	err := sg.UnmarshalBinary(label)
	if err != nil {
		return nil, err
	}
	return sg, nil
}

func (sg *SubGraph) MarshalBinary() ([]byte, error) {
	return sg.Label(), nil
}

func (sg *SubGraph) UnmarshalBinary(bytes []byte) error {
	if sg.V != nil || sg.E != nil || sg.Adj != nil {
		return errors.Errorf("sg is already loaded! will not load serialized data")
	}
	if len(bytes) < 8 {
		return errors.Errorf("bytes was too small %v < 8", len(bytes))
	}
	lenE := int(binary.BigEndian.Uint32(bytes[0:4]))
	lenV := int(binary.BigEndian.Uint32(bytes[4:8]))
	off := 8
	expected := 8 + lenV*4 + lenE*12
	if len(bytes) != expected {
		return errors.Errorf("label had %v bytes, expected %v", len(bytes), expected)
	}
	sg.V = make([]Vertex, lenV)
	sg.E = make([]Edge, lenE)
	sg.Adj = make([][]int, lenV)
	for i := 0; i < lenV; i++ {
		s := off + i*4
		sg.V[i].Idx = i
		sg.V[i].Type = int(binary.BigEndian.Uint32(bytes[s : s+4]))
		sg.Adj[i] = make([]int, 0, 4)
	}
	off += lenV * 4
	for i := 0; i < lenE; i++ {
		s := off + i*12
		src := int(binary.BigEndian.Uint32(bytes[s : s+4]))
		targ := int(binary.BigEndian.Uint32(bytes[s+4 : s+8]))
		typ := int(binary.BigEndian.Uint32(bytes[s+8 : s+12]))
		if src >= lenV || targ >= lenV {
			return errors.Errorf("edge %v (%v, %v) outside of |V| %v", i, src, targ, lenV)
		}
		sg.E[i].Src = src
		sg.E[i].Targ = targ
		sg.E[i].Type = typ
		sg.Adj[src] = append(sg.Adj[src], i)
		sg.Adj[targ] = append(sg.Adj[targ], i)
	}
	sg.labelCache = bytes
	return nil
}

// Label is the canonical binary label of the pattern: |E|, |V|, the vertex
// types and then (src, targ, type) per edge, all big endian uint32s.
func (sg *SubGraph) Label() []byte {
	if sg.labelCache != nil {
		return sg.labelCache
	}
	size := 8 + len(sg.V)*4 + len(sg.E)*12
	label := make([]byte, size)
	binary.BigEndian.PutUint32(label[0:4], uint32(len(sg.E)))
	binary.BigEndian.PutUint32(label[4:8], uint32(len(sg.V)))
	off := 8
	for i, v := range sg.V {
		s := off + i*4
		binary.BigEndian.PutUint32(label[s:s+4], uint32(v.Type))
	}
	off += len(sg.V) * 4
	for i, edge := range sg.E {
		s := off + i*12
		binary.BigEndian.PutUint32(label[s:s+4], uint32(edge.Src))
		binary.BigEndian.PutUint32(label[s+4:s+8], uint32(edge.Targ))
		binary.BigEndian.PutUint32(label[s+8:s+12], uint32(edge.Type))
	}
	sg.labelCache = label
	return label
}

func (sg *SubGraph) String() string {
	V := make([]string, 0, len(sg.V))
	E := make([]string, 0, len(sg.E))
	for _, v := range sg.V {
		V = append(V, fmt.Sprintf("(%v)", v.Type))
	}
	for _, e := range sg.E {
		E = append(E, fmt.Sprintf("[%v-%v:%v]", e.Src, e.Targ, e.Type))
	}
	return fmt.Sprintf("{%v:%v}%v%v", len(sg.E), len(sg.V), strings.Join(V, ""), strings.Join(E, ""))
}

func (sg *SubGraph) Pretty(labels Labels) string {
	V := make([]string, 0, len(sg.V))
	E := make([]string, 0, len(sg.E))
	for _, v := range sg.V {
		V = append(V, fmt.Sprintf("(%v)", labels.Label(v.Type)))
	}
	for _, e := range sg.E {
		E = append(E, fmt.Sprintf("[%v-%v:%v]", e.Src, e.Targ, labels.Label(e.Type)))
	}
	return fmt.Sprintf("{%v:%v}%v%v", len(sg.E), len(sg.V), strings.Join(V, ""), strings.Join(E, ""))
}

// Dotty renders the pattern as an undirected graphviz graph named name.
func (sg *SubGraph) Dotty(name string, labels Labels) string {
	V := make([]string, 0, len(sg.V))
	E := make([]string, 0, len(sg.E))
	for vidx, v := range sg.V {
		V = append(V, fmt.Sprintf("n%v [label=%q];", vidx, labels.Label(v.Type)))
	}
	for _, e := range sg.E {
		E = append(E, fmt.Sprintf("n%v -- n%v [label=%q];", e.Src, e.Targ, labels.Label(e.Type)))
	}
	return fmt.Sprintf("graph %q {\n%v\n%v\n}", name, strings.Join(V, "\n"), strings.Join(E, "\n"))
}
