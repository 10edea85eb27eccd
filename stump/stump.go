package stump

import (
	"fmt"
	"sort"
)

import (
	"github.com/timtadh/gstump/graph"
	"github.com/timtadh/gstump/subgraph"
)

// Stump is a decision stump over subgraph presence: a graph containing
// Pattern is classified as Sign, any other graph as -Sign.
type Stump struct {
	Pattern          *subgraph.SubGraph
	Sign             int
	Gain             float64
	Support          int     // labeled graphs holding the pattern
	WeightedSupport  float64 // sum of the weights of those graphs
	UnlabeledSupport int     // unlabeled graphs holding the pattern
	Graphs           []int   // positions of the supporting labeled graphs
	Unlabeled        []int   // positions of the supporting unlabeled graphs
	Order            int     // discovery sequence number
}

// Classify predicts the class of g.
func (s *Stump) Classify(g *graph.Graph) int {
	return s.classify(graph.NewIndices(g))
}

func (s *Stump) classify(indices *graph.Indices) int {
	if s.Pattern.EmbeddedIn(indices) {
		return s.Sign
	}
	return -s.Sign
}

func (s *Stump) String() string {
	return fmt.Sprintf("<Stump %+d gain=%.4g support=%d unlabeled=%d %v>",
		s.Sign, s.Gain, s.Support, s.UnlabeledSupport, s.Pattern)
}

func (s *Stump) Pretty(labels subgraph.Labels) string {
	return fmt.Sprintf("<Stump %+d gain=%.4g support=%d unlabeled=%d %v>",
		s.Sign, s.Gain, s.Support, s.UnlabeledSupport, s.Pattern.Pretty(labels))
}

// Less ranks stumps: higher gain first, then higher support, then earlier
// discovery.
func Less(a, b *Stump) bool {
	if a.Gain != b.Gain {
		return a.Gain > b.Gain
	}
	if a.Support != b.Support {
		return a.Support > b.Support
	}
	return a.Order < b.Order
}

func Sort(stumps []*Stump) {
	sort.SliceStable(stumps, func(i, j int) bool {
		return Less(stumps[i], stumps[j])
	})
}

// Responses is the graph by stump matrix of stump outputs (+1/-1) used by
// the outer boosting loop.
func Responses(stumps []*Stump, graphs []*graph.Graph) [][]int {
	matrix := make([][]int, len(graphs))
	for i, g := range graphs {
		indices := graph.NewIndices(g)
		matrix[i] = make([]int, len(stumps))
		for j, s := range stumps {
			matrix[i][j] = s.classify(indices)
		}
	}
	return matrix
}

// Accuracy is the fraction of graphs whose Value the stump predicts. It
// does no consistency checking so it may be used on held out graphs.
func Accuracy(s *Stump, graphs []*graph.NamedGraph) float64 {
	if len(graphs) == 0 {
		return 0
	}
	correct := 0
	for _, g := range graphs {
		if s.Classify(g.Graph) == g.Value {
			correct++
		}
	}
	return float64(correct) / float64(len(graphs))
}
