package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchNodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connect4_search_nodes_total",
		Help: "Search tree nodes visited",
	}, []string{"algorithm"})

	searchCutoffs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "connect4_search_cutoffs_total",
		Help: "Sibling lists abandoned because alpha >= beta",
	})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "connect4_search_duration_seconds",
		Help:    "Time to choose a move",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	}, []string{"algorithm"})
)
