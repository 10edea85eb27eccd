package mine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchNodes counts lattice nodes by what the search did with them
	searchNodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gstump_search_nodes_total",
		Help: "Lattice nodes handled by the branch and bound search, by outcome",
	}, []string{"outcome"})

	mineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gstump_mine_duration_seconds",
		Help:    "Wall time of a mining call, by variant",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"variant"})
)

// Stats describes one search.
type Stats struct {
	Expanded   int // nodes whose children were generated
	Cached     int // of those, nodes whose children came from the checkpoint
	Pruned     int // nodes or children cut by the bound or the weighted support
	Duplicates int // nodes reached a second time through another parent
	Excluded   int // nodes matching an excluded pattern
	Offered    int // nodes considered as stumps
}

func (s *Stats) publish() {
	searchNodes.WithLabelValues("expanded").Add(float64(s.Expanded))
	searchNodes.WithLabelValues("cached").Add(float64(s.Cached))
	searchNodes.WithLabelValues("pruned").Add(float64(s.Pruned))
	searchNodes.WithLabelValues("duplicate").Add(float64(s.Duplicates))
	searchNodes.WithLabelValues("excluded").Add(float64(s.Excluded))
	searchNodes.WithLabelValues("offered").Add(float64(s.Offered))
}
