package mine

import (
	"context"
	"runtime"
	"time"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gstump/graph"
	"github.com/timtadh/gstump/lattice"
	"github.com/timtadh/gstump/stump"
	"github.com/timtadh/gstump/subgraph"
)

type Options struct {
	Workers int
	Debug   bool
	Labels  subgraph.Labels
}

type Option func(*Options)

// Workers bounds the goroutines used to verify results.
func Workers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

func Debug(on bool) Option {
	return func(o *Options) {
		o.Debug = on
	}
}

// Labels names types in log output.
func Labels(labels subgraph.Labels) Option {
	return func(o *Options) {
		o.Labels = labels
	}
}

// Miner mines decision stumps. It keeps the lattice of its last search as a
// checkpoint so a later search with Params.Remine over the same graphs only
// has to rescore it. A Miner is not safe for concurrent use.
type Miner struct {
	Options
	Lattice   *lattice.Lattice
	evaluator *stump.Evaluator
}

type Result struct {
	Stumps  []*stump.Stump
	Partial bool // the context ended the search early
	Stats   Stats
}

func NewMiner(opts ...Option) *Miner {
	m := new(Miner)
	for _, opt := range opts {
		opt(&m.Options)
	}
	if m.Workers <= 0 {
		m.Workers = runtime.NumCPU()
	}
	m.evaluator = stump.NewEvaluator(m.Workers)
	return m
}

func (m *Miner) MineSupervised(ctx context.Context, graphs []*graph.NamedGraph, weights []float64, params Params) (*Result, error) {
	return m.Mine(ctx, Supervised{Graphs: graphs, Weights: weights}, params)
}

func (m *Miner) MineSemiSupervised(ctx context.Context, graphs []*graph.NamedGraph, weights []float64, unlabeled []*graph.Graph, params Params) (*Result, error) {
	return m.Mine(ctx, SemiSupervised{Graphs: graphs, Weights: weights, Unlabeled: unlabeled}, params)
}

// Mine returns the K best stumps (fewer if fewer qualify) in rank order.
// Every returned stump's support has been re-verified against the graphs;
// a mismatch is returned as a *stump.ConsistencyViolation. Invalid input is
// returned as an *InvalidInputError. If ctx ends the search the stumps
// found so far are returned with Result.Partial set.
func (m *Miner) Mine(ctx context.Context, task Task, params Params) (*Result, error) {
	start := time.Now()
	weights, err := validate(task, &params)
	if err != nil {
		return nil, err
	}
	named, _ := task.labeled()
	labeled := graph.Graphs(named)
	unlabeled := task.unlabeled()

	if params.Remine && m.Lattice.Compatible(labeled, unlabeled, params.MinSupport) {
		errors.Logf("DEBUG", "remining from the checkpoint")
	} else {
		if params.Remine {
			errors.Logf("INFO", "no checkpoint matches this input, mining from scratch")
		}
		m.Lattice = lattice.NewLattice(labeled, unlabeled, params.MinSupport)
	}
	m.Lattice.Labels = m.Labels
	m.Lattice.Debug = m.Debug

	values := make([]int, 0, len(named))
	for _, g := range named {
		values = append(values, g.Value)
	}
	excluded := make(map[string]bool, len(params.Exclude))
	for _, sg := range params.Exclude {
		excluded[string(sg.Builder().Build().Label())] = true
	}

	b := newBranchBound(&params, newObjective(values, weights), excluded, m.Debug)
	partial, err := b.run(ctx, m.Lattice.Roots())
	if err != nil {
		return nil, err
	}
	stumps := b.best.ranked()
	err = m.evaluator.Verify(context.WithoutCancel(ctx), stumps, labeled, unlabeled)
	if err != nil {
		return nil, err
	}
	b.stats.publish()
	mineDuration.WithLabelValues(task.variant()).Observe(time.Since(start).Seconds())
	errors.Logf("INFO", "mined %v stumps (%v) expanded %v pruned %v partial %v in %v",
		len(stumps), task.variant(), b.stats.Expanded, b.stats.Pruned, partial, time.Since(start))
	return &Result{
		Stumps:  stumps,
		Partial: partial,
		Stats:   b.stats,
	}, nil
}
