package stump

import (
	"context"
	"time"
)

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/timtadh/data-structures/errors"
	"golang.org/x/sync/errgroup"
)

import (
	"github.com/timtadh/gstump/graph"
)

var (
	verifyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gstump_verify_duration_seconds",
		Help:    "Time spent re-verifying the support of a stump list",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	violations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gstump_consistency_violations_total",
		Help: "Stumps whose reported support did not match the isomorphism oracle",
	})
)

type Evaluator struct {
	Workers int
}

// Evaluation is what the oracle observed for one stump.
type Evaluation struct {
	Stump            *Stump
	Support          int
	UnlabeledSupport int
	Graphs           []int
	Unlabeled        []int
	Accuracy         float64
	WeightedAccuracy float64
}

func NewEvaluator(workers int) *Evaluator {
	if workers < 1 {
		workers = 1
	}
	return &Evaluator{Workers: workers}
}

// Verify recomputes the support of every stump in graphs and unlabeled and
// returns a *ConsistencyViolation for the first (in list order) stump whose
// reported support does not match.
func (e *Evaluator) Verify(ctx context.Context, stumps []*Stump, graphs, unlabeled []*graph.Graph) error {
	_, err := e.evaluate(ctx, stumps, graphs, nil, nil, unlabeled)
	return err
}

// Evaluate verifies every stump like Verify and also scores it against the
// labels of graphs. weights may be nil for unit weights.
func (e *Evaluator) Evaluate(ctx context.Context, stumps []*Stump, graphs []*graph.NamedGraph, weights []float64, unlabeled []*graph.Graph) ([]*Evaluation, error) {
	if weights != nil && len(weights) != len(graphs) {
		return nil, errors.Errorf("got %v weights for %v graphs", len(weights), len(graphs))
	}
	values := make([]int, 0, len(graphs))
	for _, g := range graphs {
		values = append(values, g.Value)
	}
	return e.evaluate(ctx, stumps, graph.Graphs(graphs), values, weights, unlabeled)
}

func (e *Evaluator) evaluate(ctx context.Context, stumps []*Stump, graphs []*graph.Graph, values []int, weights []float64, unlabeled []*graph.Graph) ([]*Evaluation, error) {
	start := time.Now()
	defer func() {
		verifyDuration.Observe(time.Since(start).Seconds())
	}()
	labeledIdx := graph.NewIndices(graphs...)
	unlabeledIdx := graph.NewIndices(unlabeled...)
	results := make([]*Evaluation, len(stumps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Workers)
	for i, s := range stumps {
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ev := &Evaluation{
				Stump:     s,
				Graphs:    s.Pattern.SupportIn(labeledIdx),
				Unlabeled: s.Pattern.SupportIn(unlabeledIdx),
			}
			ev.Support = len(ev.Graphs)
			ev.UnlabeledSupport = len(ev.Unlabeled)
			if values != nil {
				ev.score(values, weights)
			}
			results[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, ev := range results {
		if err := ev.check(); err != nil {
			violations.Inc()
			errors.Logf("INFO", "%v", err)
			return nil, err
		}
	}
	return results, nil
}

func (ev *Evaluation) check() error {
	s := ev.Stump
	if !sameInts(ev.Graphs, s.Graphs) || ev.Support != s.Support {
		return &ConsistencyViolation{
			Pattern:        s.Pattern,
			Reported:       s.Support,
			Observed:       ev.Support,
			ReportedGraphs: s.Graphs,
			ObservedGraphs: ev.Graphs,
		}
	}
	if !sameInts(ev.Unlabeled, s.Unlabeled) || ev.UnlabeledSupport != s.UnlabeledSupport {
		return &ConsistencyViolation{
			Pattern:        s.Pattern,
			Reported:       s.UnlabeledSupport,
			Observed:       ev.UnlabeledSupport,
			ReportedGraphs: s.Unlabeled,
			ObservedGraphs: ev.Unlabeled,
			Unlabeled:      true,
		}
	}
	return nil
}

func (ev *Evaluation) score(values []int, weights []float64) {
	if len(values) == 0 {
		return
	}
	present := make(map[int]bool, len(ev.Graphs))
	for _, gid := range ev.Graphs {
		present[gid] = true
	}
	correct := 0
	var wCorrect, wTotal float64
	for i, y := range values {
		predicted := -ev.Stump.Sign
		if present[i] {
			predicted = ev.Stump.Sign
		}
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		wTotal += w
		if predicted == y {
			correct++
			wCorrect += w
		}
	}
	ev.Accuracy = float64(correct) / float64(len(values))
	if wTotal > 0 {
		ev.WeightedAccuracy = wCorrect / wTotal
	}
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
