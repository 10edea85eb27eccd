package subgraph

import (
	"fmt"
)

// Extension is one edge to add to a pattern. A Target.Idx equal to the
// number of pattern vertices denotes a new vertex.
type Extension struct {
	Source Vertex
	Target Vertex
	Type   int
}

// NewExt builds a normalized extension: Source.Idx < Target.Idx, so a new
// vertex is always the Target.
func NewExt(src, targ Vertex, typ int) *Extension {
	if src.Idx > targ.Idx {
		src, targ = targ, src
	}
	return &Extension{
		Source: src,
		Target: targ,
		Type:   typ,
	}
}

func (sg *SubGraph) HasExtension(ext *Extension) bool {
	if ext.Source.Idx >= len(sg.V) || ext.Source.Type != sg.V[ext.Source.Idx].Type {
		return false
	}
	if ext.Target.Idx >= len(sg.V) || ext.Target.Type != sg.V[ext.Target.Idx].Type {
		return false
	}
	return sg.HasEdge(ext.Source.Idx, ext.Target.Idx, ext.Type)
}

// Translate moves an extension of a pattern with orgLen vertices onto a
// child pattern whose vertices were renumbered by vord. A new vertex stays
// new.
func (e *Extension) Translate(orgLen int, vord []int) *Extension {
	tr := func(idx int) int {
		if idx >= orgLen {
			idx = len(vord) + (idx - orgLen)
		}
		if idx < len(vord) {
			idx = vord[idx]
		}
		return idx
	}
	return NewExt(
		Vertex{Idx: tr(e.Source.Idx), Type: e.Source.Type},
		Vertex{Idx: tr(e.Target.Idx), Type: e.Target.Type},
		e.Type)
}

func (e *Extension) String() string {
	return fmt.Sprintf("<Ext %v(%v)-%v(%v):%v>", e.Source.Idx, e.Source.Type, e.Target.Idx, e.Target.Type, e.Type)
}

func (e *Extension) ExtLess(x *Extension) bool {
	if e.Source.Idx != x.Source.Idx {
		return e.Source.Idx < x.Source.Idx
	}
	if e.Source.Type != x.Source.Type {
		return e.Source.Type < x.Source.Type
	}
	if e.Target.Idx != x.Target.Idx {
		return e.Target.Idx < x.Target.Idx
	}
	if e.Target.Type != x.Target.Type {
		return e.Target.Type < x.Target.Type
	}
	return e.Type < x.Type
}
