package fieldcache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cacheMetrics mirrors the always-on statistics as Prometheus counters.
type cacheMetrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	sets      prometheus.Counter
	evictions prometheus.Counter
}

func newCacheMetrics(reg prometheus.Registerer, component string) *cacheMetrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"component": component}
	return &cacheMetrics{
		hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "traitmatch",
			Subsystem:   "fieldcache",
			Name:        "hits_total",
			ConstLabels: labels,
			Help:        "Total number of cache hits",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "traitmatch",
			Subsystem:   "fieldcache",
			Name:        "misses_total",
			ConstLabels: labels,
			Help:        "Total number of cache misses",
		}),
		sets: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "traitmatch",
			Subsystem:   "fieldcache",
			Name:        "sets_total",
			ConstLabels: labels,
			Help:        "Total number of cache set operations",
		}),
		evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "traitmatch",
			Subsystem:   "fieldcache",
			Name:        "evictions_total",
			ConstLabels: labels,
			Help:        "Total number of cache evictions",
		}),
	}
}
