package metrics

import (
	"sync"
	"time"
)

// DigestMetrics tracks the outcome and latency of served digest requests.
type DigestMetrics struct {
	mu sync.RWMutex

	Requests int64
	Failures int64
	Empty    int64
	Latency  time.Duration
}

func NewDigestMetrics() *DigestMetrics {
	return &DigestMetrics{}
}

// Record counts one request. Empty marks a "No tweets found" answer.
func (m *DigestMetrics) Record(empty bool, err error, latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests++
	m.Latency += latency

	switch {
	case err != nil:
		m.Failures++
	case empty:
		m.Empty++
	}
}

// Snapshot returns the current counters in a JSON friendly form.
func (m *DigestMetrics) Snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	avg := 0.0

	if m.Requests > 0 {
		avg = m.Latency.Seconds() / float64(m.Requests)
	}

	return map[string]any{
		"requests":    m.Requests,
		"failures":    m.Failures,
		"empty":       m.Empty,
		"avg_latency": avg,
	}
}
