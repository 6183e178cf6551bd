package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ResolveDurationSeconds tracks how long a single wallet resolution takes.
	ResolveDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tracker_resolve_duration_seconds",
		Help:    "Time spent resolving a single wallet, by chain.",
		Buckets: prometheus.DefBuckets,
	}, []string{"chain"})

	// ResolveErrorsTotal counts resolutions that produced an error result.
	ResolveErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_resolve_errors_total",
		Help: "Wallet resolutions that produced an error result, by chain and error kind.",
	}, []string{"chain", "kind"})

	// ProviderRequestsTotal counts outbound data-provider requests.
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_provider_requests_total",
		Help: "Outbound data-provider requests, by provider and outcome.",
	}, []string{"provider", "outcome"})

	// PriceLookupsTotal counts batched price-provider lookups.
	PriceLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_price_lookups_total",
		Help: "Price provider batch lookups, by outcome.",
	}, []string{"outcome"})
)

// MustRegisterMetrics registers all tracker collectors with the default
// Prometheus registry. Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		ResolveDurationSeconds,
		ResolveErrorsTotal,
		ProviderRequestsTotal,
		PriceLookupsTotal,
	)
}
