package zookeeper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zzk_operation_total",
			Help: "Total number of namespace operations",
		},
		[]string{"operation", "status"}, // status is success or the error code
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zzk_operation_duration_seconds",
			Help:    "Time taken by a namespace operation, session setup included",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 3, 10},
		},
		[]string{"operation"},
	)

	hydratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zzk_hydrated_values_total",
			Help: "Total number of list values fetched",
		},
		[]string{"status"}, // success or error
	)
)
