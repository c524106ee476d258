// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spendly"

var rpcRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "RPC calls by procedure and result code.",
	},
	[]string{"procedure", "code"},
)

var rpcDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "duration_seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	},
	[]string{"procedure"},
)

var balanceComputation = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "balance",
		Name:      "computation_seconds",
		Help:      "Time spent computing group balances.",
		Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	},
)

var settlementsRecorded = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "balance",
		Name:      "settlements_recorded_total",
	},
)

// ObserveRPC records one finished RPC. code is "ok" or a Connect error code.
func ObserveRPC(procedure, code string, elapsed time.Duration) {
	rpcRequests.WithLabelValues(procedure, code).Inc()
	rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// ObserveBalanceComputation records the duration of one balance computation.
func ObserveBalanceComputation(elapsed time.Duration) {
	balanceComputation.Observe(elapsed.Seconds())
}

// SettlementRecorded counts a persisted settlement.
func SettlementRecorded() {
	settlementsRecorded.Inc()
}
