package fieldcache

import "github.com/prometheus/client_golang/prometheus"

type config struct {
	maxEntries int
	registerer prometheus.Registerer
	component  string
}

func defaultConfig() config {
	return config{maxEntries: 1024}
}

// Option configures a cache.
type Option func(*config)

// WithMaxEntries bounds the fingerprint-keyed (LRU) path. Values below one
// are ignored.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithMetrics exposes the cache counters as Prometheus metrics on the given
// registerer. The component label distinguishes multiple caches in one
// process. Registration conflicts panic, as with prometheus.MustRegister.
func WithMetrics(reg prometheus.Registerer, component string) Option {
	return func(c *config) {
		c.registerer = reg
		c.component = component
	}
}
