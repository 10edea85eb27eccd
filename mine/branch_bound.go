package mine

import (
	"context"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/heap"
)

import (
	"github.com/timtadh/gstump/lattice"
	"github.com/timtadh/gstump/stump"
)

// branchBound is a best first search over the lattice. The queue is ordered
// by bound; a node or child whose bound is below the k-th best gain (once k
// stumps are known) is cut together with its whole subtree.
type branchBound struct {
	params   *Params
	obj      *objective
	excluded map[string]bool
	best     *bestK
	queue    *heap.Heap
	seen     map[string]bool
	stats    Stats
	order    int
	debug    bool
}

func newBranchBound(p *Params, obj *objective, excluded map[string]bool, debug bool) *branchBound {
	return &branchBound{
		params:   p,
		obj:      obj,
		excluded: excluded,
		best:     newBestK(p.K),
		queue:    heap.NewMaxHeap(1024),
		seen:     make(map[string]bool),
		debug:    debug,
	}
}

// run searches from the roots until the queue is exhausted. If ctx is done
// first the search stops and partial is set.
func (b *branchBound) run(ctx context.Context, roots []*lattice.Node) (partial bool, err error) {
	for _, root := range roots {
		b.push(newSearchNode(root, b.obj))
	}
	for b.queue.Size() > 0 {
		if ctx.Err() != nil {
			errors.Logf("INFO", "search interrupted (%v) with %v nodes queued", ctx.Err(), b.queue.Size())
			return true, nil
		}
		cur := b.queue.Pop().(*SearchNode)
		label := string(cur.Node.Label())
		if b.seen[label] {
			b.stats.Duplicates++
			continue
		}
		b.seen[label] = true
		if b.prune(cur) {
			b.stats.Pruned++
			continue
		}
		if b.debug {
			errors.Logf("DEBUG", "cur %v %v %v", b.queue.Size(), b.best.Len(), cur)
		}
		b.offer(cur)
		if cur.Node.Edges() >= b.params.MaxEdges {
			continue
		}
		if cur.Node.Expanded() {
			b.stats.Cached++
		}
		kids, err := cur.Node.Children()
		if err != nil {
			return false, err
		}
		b.stats.Expanded++
		for _, kid := range kids {
			if b.seen[string(kid.Label())] {
				b.stats.Duplicates++
				continue
			}
			b.push(newSearchNode(kid, b.obj))
		}
	}
	return false, nil
}

func (b *branchBound) push(n *SearchNode) {
	if n.WeightedSupport < b.params.MinWeightedSupport || b.prune(n) {
		b.stats.Pruned++
		return
	}
	b.queue.Push(b.obj.priority(n.Bound), n)
}

func (b *branchBound) prune(n *SearchNode) bool {
	return b.best.full() && n.Bound < b.best.kth()
}

func (b *branchBound) offer(n *SearchNode) {
	if b.excluded[string(n.Node.Label())] {
		b.stats.Excluded++
		return
	}
	if len(n.Graphs)+len(n.Unlabeled) < b.params.MinSupport {
		return
	}
	b.stats.Offered++
	s := &stump.Stump{
		Pattern:          n.Node.SubGraph,
		Sign:             n.Sign,
		Gain:             n.Gain,
		Support:          len(n.Graphs),
		WeightedSupport:  n.WeightedSupport,
		UnlabeledSupport: len(n.Unlabeled),
		Graphs:           n.Graphs,
		Unlabeled:        n.Unlabeled,
		Order:            b.order,
	}
	b.order++
	if b.best.offer(s) && b.debug {
		errors.Logf("DEBUG", "kept %v", s)
	}
}
