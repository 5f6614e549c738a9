package nextdns

import (
	"sync/atomic"
	"time"
)

type clientStats struct {
	requests       atomic.Uint64
	failures       atomic.Uint64
	degraded       atomic.Uint64
	latencyTotalNs atomic.Uint64
}

func (s *clientStats) recordLatency(d time.Duration) {
	if d > 0 {
		s.latencyTotalNs.Add(uint64(d.Nanoseconds()))
	}
}

// Stats is a point-in-time snapshot of upstream traffic.
type Stats struct {
	Requests     uint64
	Failures     uint64
	Degraded     uint64
	AvgLatencyMs float64
}

// Stats returns the current upstream counters.
func (c *Client) Stats() Stats {
	total := c.stats.requests.Load()
	latencyNs := c.stats.latencyTotalNs.Load()

	avgLatencyMs := 0.0
	if total > 0 {
		avgLatencyMs = float64(latencyNs) / float64(total) / 1e6
	}

	return Stats{
		Requests:     total,
		Failures:     c.stats.failures.Load(),
		Degraded:     c.stats.degraded.Load(),
		AvgLatencyMs: avgLatencyMs,
	}
}
