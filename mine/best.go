package mine

import (
	"container/heap"
)

import (
	"github.com/timtadh/gstump/stump"
)

// bestK keeps the k highest ranked stumps seen so far. The root of the heap
// is the lowest ranked kept stump.
type bestK struct {
	k      int
	stumps []*stump.Stump
}

func newBestK(k int) *bestK {
	return &bestK{
		k:      k,
		stumps: make([]*stump.Stump, 0, k),
	}
}

func (b *bestK) Len() int           { return len(b.stumps) }
func (b *bestK) Less(i, j int) bool { return stump.Less(b.stumps[j], b.stumps[i]) }
func (b *bestK) Swap(i, j int)      { b.stumps[i], b.stumps[j] = b.stumps[j], b.stumps[i] }

func (b *bestK) Push(x interface{}) {
	b.stumps = append(b.stumps, x.(*stump.Stump))
}

func (b *bestK) Pop() interface{} {
	last := b.stumps[len(b.stumps)-1]
	b.stumps = b.stumps[:len(b.stumps)-1]
	return last
}

func (b *bestK) full() bool {
	return len(b.stumps) >= b.k
}

// kth is the gain a pattern has to reach to still matter. Only meaningful
// once full.
func (b *bestK) kth() float64 {
	return b.stumps[0].Gain
}

// offer keeps s if there is room or it outranks the worst kept stump.
func (b *bestK) offer(s *stump.Stump) bool {
	if !b.full() {
		heap.Push(b, s)
		return true
	}
	if stump.Less(s, b.stumps[0]) {
		b.stumps[0] = s
		heap.Fix(b, 0)
		return true
	}
	return false
}

// ranked empties the structure into a list in rank order.
func (b *bestK) ranked() []*stump.Stump {
	ranked := make([]*stump.Stump, len(b.stumps))
	copy(ranked, b.stumps)
	stump.Sort(ranked)
	return ranked
}
