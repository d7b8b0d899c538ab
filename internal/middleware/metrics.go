package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the RPC surface.
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	transfers prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "settleup",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "settleup",
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "settleup",
			Subsystem: "settlement",
			Name:      "transfers",
			Help:      "Number of transfers produced per settlement.",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.transfers)
	return m
}

// Interceptor returns a Connect interceptor recording request counts and latency.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.requests.WithLabelValues(procedure, code).Inc()
			m.duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

// ObserveSettlement records the size of a computed settlement. Safe on a nil receiver.
func (m *Metrics) ObserveSettlement(transfers int) {
	if m == nil {
		return
	}
	m.transfers.Observe(float64(transfers))
}
