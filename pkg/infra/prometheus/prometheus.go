package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registry = prometheus.NewRegistry()
	initOnce sync.Once
)

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	LockoutsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "authshield_lockouts_total",
			Help: "Identities locked, by lock type",
		},
		[]string{"type"}, // automatic or manual
	)

	UnlocksTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "authshield_unlocks_total",
			Help: "Identities unlocked, by cause",
		},
		[]string{"cause"}, // expired, admin or sweep
	)

	FailedLoginsTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "authshield_failed_logins_total",
			Help: "Failed credential checks recorded against existing identities",
		},
	)

	FailOpenTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "authshield_fail_open_total",
			Help: "Operations that failed open because a dependency errored",
		},
		[]string{"component", "operation"},
	)

	ThreatEventsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "authshield_threat_events_total",
			Help: "Threat events produced by the detectors",
		},
		[]string{"kind", "severity"},
	)

	ReputationAddresses = promauto.With(registerer).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "authshield_reputation_addresses",
			Help: "Addresses currently tracked per reputation tier",
		},
		[]string{"tier"}, // suspicious or blocked
	)

	RejectedRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "authshield_rejected_requests_total",
			Help: "Requests rejected by the threat middleware",
		},
		[]string{"reason"},
	)

	CleanupRemovedTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "authshield_cleanup_removed_total",
			Help: "Entries removed by periodic sweeps",
		},
		[]string{"job"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "authshield_request_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{"method", "status"},
	)
)

func Initialize() {
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)

		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

// Gatherer exposes the private registry to the /metrics handler and tests.
func Gatherer() prometheus.Gatherer {
	return registry
}
