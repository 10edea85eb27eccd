package stump

import (
	"context"
	"testing"
)

import (
	"github.com/stretchr/testify/assert"
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/test"
)

import (
	"github.com/timtadh/gstump/graph"
	"github.com/timtadh/gstump/subgraph"
)

func init() {
	errors.SkipLogging["INFO"] = true
}

const (
	C = iota
	O
	single
	double
)

func molecule(types []int, edges [][3]int) *graph.Graph {
	b := graph.Build(len(types), len(edges))
	for _, t := range types {
		b.AddNode(t)
	}
	for _, e := range edges {
		if _, err := b.AddEdge(&b.V[e[0]], &b.V[e[1]], e[2]); err != nil {
			panic(err)
		}
	}
	return b.Build()
}

func carbonyl() *subgraph.SubGraph {
	return subgraph.FromGraph(molecule([]int{C, O}, [][3]int{{0, 1, double}}))
}

// acetone-ish graphs have a carbonyl, the alcohols do not
func dataset() []*graph.NamedGraph {
	ketone := func(name string) *graph.NamedGraph {
		return &graph.NamedGraph{
			Graph: molecule([]int{C, C, C, O}, [][3]int{{0, 1, single}, {1, 2, single}, {1, 3, double}}),
			Name:  name,
			Value: 1,
		}
	}
	alcohol := func(name string) *graph.NamedGraph {
		return &graph.NamedGraph{
			Graph: molecule([]int{C, C, O}, [][3]int{{0, 1, single}, {1, 2, single}}),
			Name:  name,
			Value: -1,
		}
	}
	return []*graph.NamedGraph{ketone("k1"), alcohol("a1"), ketone("k2"), alcohol("a2")}
}

func TestClassify(x *testing.T) {
	t := (*test.T)(x)
	s := &Stump{Pattern: carbonyl(), Sign: 1}
	for _, g := range dataset() {
		t.Assert(s.Classify(g.Graph) == g.Value, "%v classified %v", g.Name, s.Classify(g.Graph))
	}
	s.Sign = -1
	for _, g := range dataset() {
		t.Assert(s.Classify(g.Graph) == -g.Value, "%v classified %v", g.Name, s.Classify(g.Graph))
	}
	t.Assert(Accuracy(s, dataset()) == 0, "inverted stump should be always wrong")
	s.Sign = 1
	t.Assert(Accuracy(s, dataset()) == 1, "stump should be always right")
	t.Assert(Accuracy(s, nil) == 0, "no graphs no accuracy")
}

func TestRanking(x *testing.T) {
	a := assert.New(x)
	stumps := []*Stump{
		{Gain: 1, Support: 5, Order: 0},
		{Gain: 2, Support: 1, Order: 1},
		{Gain: 2, Support: 3, Order: 2},
		{Gain: 2, Support: 3, Order: 3},
		{Gain: 0.5, Support: 9, Order: 4},
	}
	Sort(stumps)
	order := make([]int, 0, len(stumps))
	for _, s := range stumps {
		order = append(order, s.Order)
	}
	a.Equal([]int{2, 3, 1, 0, 4}, order)
}

func TestResponses(x *testing.T) {
	a := assert.New(x)
	cc := subgraph.FromGraph(molecule([]int{C, C}, [][3]int{{0, 1, single}}))
	stumps := []*Stump{{Pattern: carbonyl(), Sign: 1}, {Pattern: cc, Sign: -1}}
	matrix := Responses(stumps, graph.Graphs(dataset()))
	a.Equal([][]int{{1, -1}, {-1, -1}, {1, -1}, {-1, -1}}, matrix)
}

func TestEvaluate(x *testing.T) {
	a := assert.New(x)
	graphs := dataset()
	s := &Stump{
		Pattern: carbonyl(),
		Sign:    1,
		Support: 2,
		Graphs:  []int{0, 2},
	}
	evals, err := NewEvaluator(2).Evaluate(context.Background(), []*Stump{s}, graphs, []float64{1, 1, 1, 5}, nil)
	a.NoError(err)
	a.Len(evals, 1)
	a.Equal(2, evals[0].Support)
	a.Equal(0, evals[0].UnlabeledSupport)
	a.Equal(1.0, evals[0].Accuracy)
	a.Equal(1.0, evals[0].WeightedAccuracy)

	_, err = NewEvaluator(1).Evaluate(context.Background(), []*Stump{s}, graphs, []float64{1}, nil)
	a.Error(err)
}

func TestVerifyViolation(x *testing.T) {
	a := assert.New(x)
	graphs := graph.Graphs(dataset())
	good := &Stump{Pattern: carbonyl(), Sign: 1, Support: 2, Graphs: []int{0, 2}}
	a.NoError(NewEvaluator(4).Verify(context.Background(), []*Stump{good}, graphs, nil))

	bad := &Stump{Pattern: carbonyl(), Sign: 1, Support: 1, Graphs: []int{0}}
	err := NewEvaluator(4).Verify(context.Background(), []*Stump{good, bad}, graphs, nil)
	a.Error(err)
	cv, ok := err.(*ConsistencyViolation)
	a.True(ok, "expected a *ConsistencyViolation got %T", err)
	a.Equal(1, cv.Reported)
	a.Equal(2, cv.Observed)
	a.False(cv.Unlabeled)
	a.Equal([]int{0}, cv.ReportedGraphs)
	a.Equal([]int{0, 2}, cv.ObservedGraphs)

	// right count, wrong graphs
	swapped := &Stump{Pattern: carbonyl(), Sign: 1, Support: 2, Graphs: []int{0, 1}}
	err = NewEvaluator(2).Verify(context.Background(), []*Stump{swapped}, graphs, nil)
	cv, ok = err.(*ConsistencyViolation)
	a.True(ok, "expected a *ConsistencyViolation got %T", err)
	a.Equal(2, cv.Reported)
	a.Equal(2, cv.Observed)
	a.Equal([]int{0, 1}, cv.ReportedGraphs)
	a.Equal([]int{0, 2}, cv.ObservedGraphs)
	a.Contains(cv.Error(), "reported 2 [0 1] observed 2 [0 2]")

	unlabeled := []*graph.Graph{graphs[0]}
	err = NewEvaluator(4).Verify(context.Background(), []*Stump{good}, graphs, unlabeled)
	cv, ok = err.(*ConsistencyViolation)
	a.True(ok, "expected a *ConsistencyViolation got %T", err)
	a.True(cv.Unlabeled)
	a.Equal(0, cv.Reported)
	a.Equal(1, cv.Observed)
}

func TestVerifyCanceled(x *testing.T) {
	a := assert.New(x)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Stump{Pattern: carbonyl(), Sign: 1, Support: 2, Graphs: []int{0, 2}}
	err := NewEvaluator(1).Verify(ctx, []*Stump{s}, graph.Graphs(dataset()), nil)
	a.ErrorIs(err, context.Canceled)
}
