package fieldcache

import "sync/atomic"

// Statistics tracks cache performance counters. All methods are safe for
// concurrent use.
type Statistics struct {
	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	evictions atomic.Int64
}

// NewStatistics creates a statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{}
}

// Hit records a cache hit.
func (s *Statistics) Hit() { s.hits.Add(1) }

// Miss records a cache miss.
func (s *Statistics) Miss() { s.misses.Add(1) }

// Set records a stored entry.
func (s *Statistics) Set() { s.sets.Add(1) }

// Eviction records an evicted entry.
func (s *Statistics) Eviction() { s.evictions.Add(1) }

// Hits returns the total number of cache hits.
func (s *Statistics) Hits() int64 { return s.hits.Load() }

// Misses returns the total number of cache misses.
func (s *Statistics) Misses() int64 { return s.misses.Load() }

// Sets returns the total number of stored entries.
func (s *Statistics) Sets() int64 { return s.sets.Load() }

// Evictions returns the total number of evicted entries.
func (s *Statistics) Evictions() int64 { return s.evictions.Load() }

// HitRatio returns hits / (hits + misses), or 0 with no traffic.
func (s *Statistics) HitRatio() float64 {
	hits := s.Hits()
	total := hits + s.Misses()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Reset zeroes all counters.
func (s *Statistics) Reset() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.sets.Store(0)
	s.evictions.Store(0)
}

// Summary is a point-in-time snapshot of the counters.
type Summary struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Sets      int64   `json:"sets"`
	Evictions int64   `json:"evictions"`
	HitRatio  float64 `json:"hit_ratio"`
}

// Summary returns a snapshot of all counters.
func (s *Statistics) Summary() Summary {
	return Summary{
		Hits:      s.Hits(),
		Misses:    s.Misses(),
		Sets:      s.Sets(),
		Evictions: s.Evictions(),
		HitRatio:  s.HitRatio(),
	}
}
