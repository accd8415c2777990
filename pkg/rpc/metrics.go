package rpc

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics used in monitoring dispatches.
var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of requests sent to RPC endpoints",
			Name:      "rpc_requests_total",
			Namespace: "xphere",
		},
		[]string{"method", "path", "code"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Help:      "RPC request roundtrip time",
			Name:      "rpc_request_duration_seconds",
			Namespace: "xphere",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"path"},
	)

	dispatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of fan-out dispatches by mode and outcome",
			Name:      "rpc_dispatches_total",
			Namespace: "xphere",
		},
		[]string{"mode", "outcome"},
	)

	inflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Number of requests waiting for an endpoint",
			Name:      "rpc_inflight_requests",
			Namespace: "xphere",
		},
	)
)

func init() {
	prometheus.MustRegister(
		requestsTotal,
		requestDuration,
		dispatchesTotal,
		inflightRequests,
	)
}

func observeRequest(method, path string, r *Result, start time.Time) {
	code := "error"
	if r.Err == nil {
		code = strconv.Itoa(r.Code)
	}
	requestsTotal.WithLabelValues(method, path, code).Inc()
	requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
}

func observeDispatch(mode string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	dispatchesTotal.WithLabelValues(mode, outcome).Inc()
}
