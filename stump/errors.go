package stump

import (
	"fmt"
)

import (
	"github.com/timtadh/gstump/subgraph"
)

// ConsistencyViolation is returned when the support the search reported for
// a pattern differs from what an independent isomorphism test observes.
// It means the search bookkeeping is broken and no result can be trusted.
type ConsistencyViolation struct {
	Pattern        *subgraph.SubGraph
	Reported       int
	Observed       int
	ReportedGraphs []int // positions of the graphs the search claimed
	ObservedGraphs []int // positions of the graphs the pattern occurs in
	Unlabeled      bool
}

func (c *ConsistencyViolation) Error() string {
	kind := "labeled"
	if c.Unlabeled {
		kind = "unlabeled"
	}
	return fmt.Sprintf("inconsistent %v support for %v: reported %v %v observed %v %v",
		kind, c.Pattern, c.Reported, c.ReportedGraphs, c.Observed, c.ObservedGraphs)
}
