package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FetchCycles    *prometheus.CounterVec
	ProviderErrors *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
	ActiveRequests prometheus.Gauge
	Sessions       prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		FetchCycles: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "citymap_fetch_cycles_total",
			Help: "Total number of completed fetch cycles, by whether their result was applied or discarded as stale.",
		}, []string{"status"}),
		ProviderErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "citymap_provider_errors_total",
			Help: "Total number of failed category queries against the POI provider.",
		}, []string{"category"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "citymap_provider_request_duration_seconds",
			Help:    "Duration of requests to the POI provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveRequests: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "citymap_provider_active_requests",
			Help: "Current number of in-flight category queries.",
		}),
		Sessions: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "citymap_sessions",
			Help: "Current number of live map sessions.",
		}),
	}
}
