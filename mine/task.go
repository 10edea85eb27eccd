package mine

import (
	"math"
)

import (
	"github.com/timtadh/gstump/graph"
	"github.com/timtadh/gstump/subgraph"
)

// Task is what to mine over: Supervised or SemiSupervised.
type Task interface {
	labeled() ([]*graph.NamedGraph, []float64)
	unlabeled() []*graph.Graph
	variant() string
}

// Supervised mines over labeled graphs only. Weights may be nil, meaning
// every graph weighs 1.
type Supervised struct {
	Graphs  []*graph.NamedGraph
	Weights []float64
}

// SemiSupervised additionally counts Unlabeled graphs toward the minimum
// support. They never contribute to the gain.
type SemiSupervised struct {
	Graphs    []*graph.NamedGraph
	Weights   []float64
	Unlabeled []*graph.Graph
}

func (t Supervised) labeled() ([]*graph.NamedGraph, []float64) { return t.Graphs, t.Weights }
func (t Supervised) unlabeled() []*graph.Graph                  { return nil }
func (t Supervised) variant() string                            { return "supervised" }

func (t SemiSupervised) labeled() ([]*graph.NamedGraph, []float64) { return t.Graphs, t.Weights }
func (t SemiSupervised) unlabeled() []*graph.Graph                  { return t.Unlabeled }
func (t SemiSupervised) variant() string                            { return "semi-supervised" }

// Params bound one search.
type Params struct {
	Exclude            []*subgraph.SubGraph // never reported, supergraphs still are
	MinSupport         int                  // graphs (labeled and unlabeled) holding a pattern
	MinWeightedSupport float64              // sum of weights of labeled graphs holding a pattern
	K                  int                  // stumps to return
	MaxEdges           int                  // largest pattern considered
	Remine             bool                 // reuse the previous search's lattice when possible
}

func validate(task Task, p *Params) (weights []float64, err error) {
	if task == nil {
		return nil, invalid("task", "nil")
	}
	graphs, weights := task.labeled()
	if len(graphs) == 0 {
		return nil, invalid("graphs", "no labeled graphs to mine")
	}
	for i, g := range graphs {
		if g == nil || g.Graph == nil {
			return nil, invalid("graphs", "graph %v is nil", i)
		}
		if g.Value != 1 && g.Value != -1 {
			return nil, invalid("graphs", "graph %v (%v) has label %v, expected +1 or -1", i, g.Name, g.Value)
		}
	}
	for i, g := range task.unlabeled() {
		if g == nil {
			return nil, invalid("unlabeled", "graph %v is nil", i)
		}
	}
	if weights == nil {
		weights = make([]float64, len(graphs))
		for i := range weights {
			weights[i] = 1
		}
	} else if len(weights) != len(graphs) {
		return nil, invalid("weights", "got %v weights for %v graphs", len(weights), len(graphs))
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, invalid("weights", "weight %v is %v", i, w)
		}
	}
	if p.K < 1 {
		return nil, invalid("k", "%v < 1", p.K)
	}
	if p.MinSupport < 0 {
		return nil, invalid("min support", "%v < 0", p.MinSupport)
	}
	if math.IsNaN(p.MinWeightedSupport) || p.MinWeightedSupport < 0 {
		return nil, invalid("min weighted support", "%v", p.MinWeightedSupport)
	}
	if p.MaxEdges < 1 {
		return nil, invalid("max edges", "%v < 1", p.MaxEdges)
	}
	for i, sg := range p.Exclude {
		if sg == nil || len(sg.E) == 0 {
			return nil, invalid("exclude", "pattern %v is empty", i)
		}
		if err := sg.Validate(); err != nil {
			return nil, invalid("exclude", "pattern %v: %v", i, err)
		}
		if !sg.Connected() {
			return nil, invalid("exclude", "pattern %v is disconnected", i)
		}
	}
	return weights, nil
}
