package decision

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "connect4_decisions_total",
	Help: "Decision requests by agent and outcome",
}, []string{"agent", "outcome"})
