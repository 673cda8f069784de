package role

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var probeTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "zzk_probe_total",
		Help: "Total number of role probes by outcome",
	},
	[]string{"role"}, // Follower, Leader, Standalone, Unknown or error
)
