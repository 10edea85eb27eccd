package mine

import (
	"context"
	"math"
	"sort"
	"testing"
)

import (
	"github.com/stretchr/testify/assert"
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/test"
)

import (
	"github.com/timtadh/gstump/graph"
	"github.com/timtadh/gstump/lattice"
	"github.com/timtadh/gstump/stump"
	"github.com/timtadh/gstump/subgraph"
)

func init() {
	errors.SkipLogging["DEBUG"] = true
	errors.SkipLogging["INFO"] = true
}

const (
	C = iota
	O
	N
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

func triangle() *graph.Graph {
	return molecule([]int{C, C, C}, [][3]int{{0, 1, single}, {1, 2, single}, {2, 0, single}})
}

func ethane() *graph.Graph {
	return molecule([]int{C, C}, [][3]int{{0, 1, single}})
}

func named(name string, value int, g *graph.Graph) *graph.NamedGraph {
	return &graph.NamedGraph{Graph: g, Name: name, Value: value}
}

// two triangles (+1) and two single bonds (-1)
func trianglesVsEdges() []*graph.NamedGraph {
	return []*graph.NamedGraph{
		named("t1", 1, triangle()),
		named("t2", 1, triangle()),
		named("e1", -1, ethane()),
		named("e2", -1, ethane()),
	}
}

func chemistry() []*graph.NamedGraph {
	return []*graph.NamedGraph{
		named("acetic", 1, molecule([]int{C, C, O, O}, [][3]int{{0, 1, single}, {1, 2, double}, {1, 3, single}})),
		named("cyclohexane", -1, molecule([]int{C, C, C, C, C, C},
			[][3]int{{0, 1, single}, {1, 2, single}, {2, 3, single}, {3, 4, single}, {4, 5, single}, {5, 0, single}})),
		named("picoline", 1, molecule([]int{C, C, N, C, C, C, C},
			[][3]int{{0, 1, double}, {1, 2, single}, {2, 3, double}, {3, 4, single}, {4, 5, double}, {5, 0, single}, {5, 6, single}})),
		named("ether", -1, molecule([]int{C, O, C, C}, [][3]int{{0, 1, single}, {1, 2, single}, {2, 3, single}})),
		named("acetone", 1, molecule([]int{C, C, C, O}, [][3]int{{0, 1, single}, {1, 2, single}, {1, 3, double}})),
		named("propane", -1, molecule([]int{C, C, C}, [][3]int{{0, 1, single}, {1, 2, single}})),
	}
}

func path3() *subgraph.SubGraph {
	return subgraph.FromGraph(molecule([]int{C, C, C}, [][3]int{{0, 1, single}, {1, 2, single}}))
}

func TestTrianglesVsEdges(x *testing.T) {
	t := (*test.T)(x)
	graphs := trianglesVsEdges()
	m := NewMiner(Workers(2), Debug(true))
	res, err := m.MineSupervised(context.Background(), graphs, nil, Params{
		MinSupport: 2,
		K:          1,
		MaxEdges:   3,
	})
	t.Assert(err == nil, "unexpected error %v", err)
	t.Assert(!res.Partial, "search should have completed")
	t.Assert(len(res.Stumps) == 1, "expected 1 stump got %v", res.Stumps)
	s := res.Stumps[0]
	t.Assert(s.Gain == 4, "expected gain 4 got %v", s.Gain)
	t.Assert(s.Support == 2, "expected support 2 got %v", s.Support)
	t.Assert(s.Sign == 1, "the pattern predicts triangles %v", s)
	// the 2-path ties the triangle and is found first
	t.Assert(string(s.Pattern.Label()) == string(path3().Label()), "expected the 2-path got %v", s.Pattern)
	observed := s.Pattern.SupportIn(graph.NewIndices(graph.Graphs(graphs)...))
	t.Assert(len(observed) == 2, "recomputed support %v", observed)
	for _, g := range graphs {
		t.Assert(s.Classify(g.Graph) == g.Value, "%v misclassified", g.Name)
	}
}

func TestExcludedStillExplored(x *testing.T) {
	a := assert.New(x)
	res, err := NewMiner().MineSupervised(context.Background(), trianglesVsEdges(), nil, Params{
		Exclude:    []*subgraph.SubGraph{path3()},
		MinSupport: 2,
		K:          1,
		MaxEdges:   3,
	})
	a.NoError(err)
	a.Len(res.Stumps, 1)
	a.Equal(3, len(res.Stumps[0].Pattern.E), "the triangle should replace the excluded path")
	a.Equal(4.0, res.Stumps[0].Gain)
	a.Equal(1, res.Stats.Excluded)
}

func TestMaxEdges(x *testing.T) {
	a := assert.New(x)
	res, err := NewMiner().MineSupervised(context.Background(), trianglesVsEdges(), nil, Params{
		MinSupport: 2,
		K:          3,
		MaxEdges:   1,
	})
	a.NoError(err)
	a.Len(res.Stumps, 1)
	a.Equal(1, len(res.Stumps[0].Pattern.E))
	a.Equal(0.0, res.Stumps[0].Gain)
	a.Equal(4, res.Stumps[0].Support)
}

func TestMinWeightedSupport(x *testing.T) {
	a := assert.New(x)
	res, err := NewMiner().MineSupervised(context.Background(), trianglesVsEdges(), nil, Params{
		MinSupport:         1,
		MinWeightedSupport: 3,
		K:                  5,
		MaxEdges:           3,
	})
	a.NoError(err)
	a.Len(res.Stumps, 1)
	a.Equal(4.0, res.Stumps[0].WeightedSupport)
}

func TestNothingQualifies(x *testing.T) {
	a := assert.New(x)
	res, err := NewMiner().MineSupervised(context.Background(), trianglesVsEdges(), nil, Params{
		MinSupport: 5,
		K:          5,
		MaxEdges:   3,
	})
	a.NoError(err)
	a.Len(res.Stumps, 0)
}

func TestInvalidInput(x *testing.T) {
	a := assert.New(x)
	good := Params{MinSupport: 1, K: 1, MaxEdges: 2}
	cases := []struct {
		name    string
		graphs  []*graph.NamedGraph
		weights []float64
		params  Params
	}{
		{"empty", nil, nil, good},
		{"bad label", []*graph.NamedGraph{named("x", 0, ethane())}, nil, good},
		{"nil graph", []*graph.NamedGraph{nil}, nil, good},
		{"weights length", trianglesVsEdges(), []float64{1}, good},
		{"negative weight", trianglesVsEdges(), []float64{1, 1, -1, 1}, good},
		{"nan weight", trianglesVsEdges(), []float64{1, math.NaN(), 1, 1}, good},
		{"k", trianglesVsEdges(), nil, Params{MinSupport: 1, K: 0, MaxEdges: 2}},
		{"min support", trianglesVsEdges(), nil, Params{MinSupport: -1, K: 1, MaxEdges: 2}},
		{"weighted support", trianglesVsEdges(), nil, Params{MinWeightedSupport: -1, K: 1, MaxEdges: 2}},
		{"max edges", trianglesVsEdges(), nil, Params{MinSupport: 1, K: 1, MaxEdges: 0}},
		{"exclude", trianglesVsEdges(), nil, Params{Exclude: []*subgraph.SubGraph{subgraph.EmptySubGraph()}, K: 1, MaxEdges: 2}},
		{"exclude edge out of range", trianglesVsEdges(), nil, Params{Exclude: []*subgraph.SubGraph{
			{V: subgraph.Vertices{{Idx: 0, Type: C}}, E: subgraph.Edges{{Src: 0, Targ: 5, Type: single}}},
		}, K: 1, MaxEdges: 2}},
		{"exclude self loop", trianglesVsEdges(), nil, Params{Exclude: []*subgraph.SubGraph{
			{V: subgraph.Vertices{{Idx: 0, Type: C}, {Idx: 1, Type: C}}, E: subgraph.Edges{{Src: 0, Targ: 1, Type: single}, {Src: 1, Targ: 1, Type: single}}},
		}, K: 1, MaxEdges: 2}},
		{"exclude vertex numbering", trianglesVsEdges(), nil, Params{Exclude: []*subgraph.SubGraph{
			{V: subgraph.Vertices{{Idx: 0, Type: C}, {Idx: 7, Type: C}}, E: subgraph.Edges{{Src: 0, Targ: 1, Type: single}}},
		}, K: 1, MaxEdges: 2}},
	}
	for _, c := range cases {
		_, err := NewMiner().MineSupervised(context.Background(), c.graphs, c.weights, c.params)
		a.Error(err, c.name)
		_, ok := err.(*InvalidInputError)
		a.True(ok, "%v: expected *InvalidInputError got %T", c.name, err)
	}
	_, err := NewMiner().MineSemiSupervised(context.Background(), trianglesVsEdges(), nil, []*graph.Graph{nil}, good)
	_, ok := err.(*InvalidInputError)
	a.True(ok, "nil unlabeled graph should be rejected, got %v", err)
}

func TestSemiSupervised(x *testing.T) {
	a := assert.New(x)
	graphs := []*graph.NamedGraph{named("t", 1, triangle()), named("e", -1, ethane())}
	unlabeled := []*graph.Graph{triangle()}
	params := Params{MinSupport: 2, K: 5, MaxEdges: 3}

	sup, err := NewMiner().MineSupervised(context.Background(), graphs, nil, params)
	a.NoError(err)
	a.Len(sup.Stumps, 1, "only the single bond is in 2 labeled graphs")

	semi, err := NewMiner().MineSemiSupervised(context.Background(), graphs, nil, unlabeled, params)
	a.NoError(err)
	a.Len(semi.Stumps, 3)
	for _, s := range semi.Stumps {
		a.Equal(1, s.UnlabeledSupport, "%v", s)
		a.Equal([]int{0}, s.Unlabeled)
		if len(s.Pattern.E) > 1 {
			a.Equal(1, s.Support)
			a.Equal(2.0, s.Gain, "unlabeled graphs must not add gain")
		}
	}
	a.Equal(2.0, semi.Stumps[0].Gain)
}

// brute force scores every pattern up to maxEdges and returns the best k
// gains.
func bruteForce(graphs []*graph.NamedGraph, weights []float64, minSupport, maxEdges, k int) []float64 {
	values := make([]int, 0, len(graphs))
	for _, g := range graphs {
		values = append(values, g.Value)
	}
	obj := newObjective(values, weights)
	l := lattice.NewLattice(graph.Graphs(graphs), nil, minSupport)
	seen := make(map[string]bool)
	gains := make([]float64, 0, 100)
	queue := append([]*lattice.Node{}, l.Roots()...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if seen[string(n.Label())] {
			continue
		}
		seen[string(n.Label())] = true
		labeled, _ := n.Support()
		gains = append(gains, obj.score(lattice.Ints(labeled)).Gain)
		if n.Edges() >= maxEdges {
			continue
		}
		kids, err := n.Children()
		if err != nil {
			panic(err)
		}
		queue = append(queue, kids...)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(gains)))
	if len(gains) > k {
		gains = gains[:k]
	}
	return gains
}

func TestBoundIsSafe(x *testing.T) {
	t := (*test.T)(x)
	graphs := chemistry()
	for _, weights := range [][]float64{
		nil,
		{0.1, 0.3, 0.05, 0.2, 0.25, 0.1},
		{3, 1, 1, 1, 0.5, 2},
	} {
		w := weights
		if w == nil {
			w = []float64{1, 1, 1, 1, 1, 1}
		}
		for _, k := range []int{1, 3, 7} {
			res, err := NewMiner().MineSupervised(context.Background(), graphs, weights, Params{
				MinSupport: 1,
				K:          k,
				MaxEdges:   4,
			})
			t.Assert(err == nil, "unexpected error %v", err)
			expected := bruteForce(graphs, w, 1, 4, k)
			t.Assert(len(res.Stumps) == len(expected), "k=%v got %v stumps expected %v", k, len(res.Stumps), len(expected))
			for i, s := range res.Stumps {
				t.Assert(math.Abs(s.Gain-expected[i]) < 1e-9, "k=%v rank %v gain %v expected %v", k, i, s.Gain, expected[i])
				if i > 0 {
					t.Assert(!stump.Less(s, res.Stumps[i-1]), "stumps out of rank order %v %v", res.Stumps[i-1], s)
				}
			}
		}
	}
}

func TestDeterministic(x *testing.T) {
	t := (*test.T)(x)
	graphs := chemistry()
	for _, c := range []struct {
		weights []float64
		k       int
	}{
		{nil, 3},
		{[]float64{0.1, 0.3, 0.05, 0.2, 0.25, 0.1}, 5},
		{nil, 100},
	} {
		params := Params{MinSupport: 1, K: c.k, MaxEdges: 4}
		first, err := NewMiner().MineSupervised(context.Background(), graphs, c.weights, params)
		t.Assert(err == nil, "unexpected error %v", err)
		second, err := NewMiner(Workers(1)).MineSupervised(context.Background(), graphs, c.weights, params)
		t.Assert(err == nil, "unexpected error %v", err)
		t.Assert(len(first.Stumps) == len(second.Stumps), "k=%v %v stumps then %v", c.k, len(first.Stumps), len(second.Stumps))
		for i := range first.Stumps {
			a, b := first.Stumps[i], second.Stumps[i]
			t.Assert(string(a.Pattern.Label()) == string(b.Pattern.Label()), "k=%v rank %v: %v then %v", c.k, i, a, b)
			t.Assert(a.Gain == b.Gain, "k=%v rank %v gain %v then %v", c.k, i, a.Gain, b.Gain)
			t.Assert(a.Order == b.Order, "k=%v rank %v order %v then %v", c.k, i, a.Order, b.Order)
			t.Assert(a.Support == b.Support, "k=%v rank %v support %v then %v", c.k, i, a.Support, b.Support)
		}
	}
}

func TestMinSupportNeverAddsStumps(x *testing.T) {
	t := (*test.T)(x)
	graphs := chemistry()
	for _, k := range []int{3, 100} {
		prev := -1
		for minSupport := 1; minSupport <= len(graphs)+1; minSupport++ {
			res, err := NewMiner().MineSupervised(context.Background(), graphs, nil, Params{
				MinSupport: minSupport,
				K:          k,
				MaxEdges:   4,
			})
			t.Assert(err == nil, "unexpected error %v", err)
			for _, s := range res.Stumps {
				t.Assert(s.Support >= minSupport, "min support %v returned %v", minSupport, s)
			}
			if prev >= 0 {
				t.Assert(len(res.Stumps) <= prev, "k=%v min support %v returned %v stumps, %v at %v",
					k, minSupport, len(res.Stumps), prev, minSupport-1)
			}
			prev = len(res.Stumps)
		}
		t.Assert(prev == 0, "no pattern occurs in more graphs than there are")
	}
}

func TestRemine(x *testing.T) {
	a := assert.New(x)
	graphs := chemistry()
	params := Params{MinSupport: 1, K: 4, MaxEdges: 4}
	m := NewMiner()
	first, err := m.MineSupervised(context.Background(), graphs, nil, params)
	a.NoError(err)
	a.Len(first.Stumps, 4)
	checkpoint := m.Lattice

	weights := []float64{0.4, 0.1, 0.1, 0.2, 0.1, 0.1}
	params.Remine = true
	again, err := m.MineSupervised(context.Background(), graphs, weights, params)
	a.NoError(err)
	a.True(checkpoint == m.Lattice, "the checkpoint should have been reused")
	a.True(again.Stats.Cached > 0, "some nodes should come from the checkpoint")

	fresh, err := NewMiner().MineSupervised(context.Background(), graphs, weights, Params{MinSupport: 1, K: 4, MaxEdges: 4})
	a.NoError(err)
	a.Equal(len(fresh.Stumps), len(again.Stumps))
	for i := range fresh.Stumps {
		a.Equal(string(fresh.Stumps[i].Pattern.Label()), string(again.Stumps[i].Pattern.Label()))
		a.InDelta(fresh.Stumps[i].Gain, again.Stumps[i].Gain, 1e-12)
		a.Equal(fresh.Stumps[i].Support, again.Stumps[i].Support)
	}

	// a different support threshold cannot reuse the lattice
	params.MinSupport = 2
	_, err = m.MineSupervised(context.Background(), graphs, weights, params)
	a.NoError(err)
	a.False(checkpoint == m.Lattice)
}

func TestCorruptCheckpoint(x *testing.T) {
	a := assert.New(x)
	graphs := chemistry()
	params := Params{MinSupport: 1, K: 100, MaxEdges: 2}
	m := NewMiner(Workers(3))
	_, err := m.MineSupervised(context.Background(), graphs, nil, params)
	a.NoError(err)

	var victim *lattice.Node
	for _, root := range m.Lattice.Roots() {
		if root.SupportCount() >= 2 {
			victim = root
			break
		}
	}
	a.NotNil(victim)
	dropped := victim.Embeddings.Graphs(m.Lattice.Indices)[0]
	kept := make(subgraph.Embeddings, 0, len(victim.Embeddings))
	for _, emb := range victim.Embeddings {
		if emb.Graph(m.Lattice.Indices) != dropped {
			kept = append(kept, emb)
		}
	}
	victim.Embeddings = kept

	params.Remine = true
	res, err := m.MineSupervised(context.Background(), graphs, nil, params)
	a.Nil(res)
	cv, ok := err.(*stump.ConsistencyViolation)
	a.True(ok, "expected *stump.ConsistencyViolation got %T %v", err, err)
	a.Equal(cv.Reported+1, cv.Observed)
	a.Equal(string(victim.Label()), string(cv.Pattern.Label()))
}

func TestDeadline(x *testing.T) {
	a := assert.New(x)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := NewMiner().MineSupervised(ctx, chemistry(), nil, Params{MinSupport: 1, K: 3, MaxEdges: 4})
	a.NoError(err)
	a.True(res.Partial)
	a.Len(res.Stumps, 0)
}

func TestObjective(x *testing.T) {
	a := assert.New(x)
	obj := newObjective([]int{1, 1, -1, -1}, []float64{1, 2, 3, 4})
	a.Equal(-4.0, obj.D)
	s := obj.score([]int{0, 1})
	a.Equal(10.0, s.Gain)
	a.Equal(1, s.Sign)
	a.Equal(3.0, s.WeightedSupport)
	s = obj.score([]int{3})
	a.Equal(4.0, s.Gain)
	a.Equal(-1, s.Sign)
	s = obj.score([]int{0, 2})
	a.True(s.Bound >= s.Gain)
	for _, sub := range [][]int{{0}, {2}, {}} {
		a.True(obj.score(sub).Gain <= s.Bound, "bound %v broken by %v", s.Bound, sub)
	}
}
