package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pingerconf/internal/structures"
)

// DraftCounter reports how many edit sessions are open.
type DraftCounter interface {
	Len() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(op string, duration time.Duration)
	IncSaves(result string)
	SetUsersTotal(count int)
	SetDraftsOpen(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration *prometheus.HistogramVec
	savesTotal          *prometheus.CounterVec
	usersTotal          prometheus.Gauge
	draftsOpen          prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(op string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSaves(result string) {
	m.savesTotal.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) SetUsersTotal(count int) {
	m.usersTotal.Set(float64(count))
}

func (m *MetricsProvider) SetDraftsOpen(count int) {
	m.draftsOpen.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pingerconf_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pingerconf_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pingerconf_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pingerconf_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pingerconf_persistence_duration_seconds",
			Help:    "Duration of document reads and writes in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),

		savesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pingerconf_saves_total",
			Help: "Record saves by outcome",
		}, []string{"result"}),

		usersTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "pingerconf_users_total",
			Help: "Number of user records in the document",
		}),

		draftsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "pingerconf_drafts_open",
			Help: "Current number of open edit sessions",
		}),
	}

	return m
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncSaves(_ string)                                    {}
func (n *noopMetrics) SetUsersTotal(_ int)                                  {}
func (n *noopMetrics) SetDraftsOpen(_ int)                                  {}
