// Package kioskclient is the HTTP layer used by mobile builds of the kiosk
// app. It keeps a connection-quality estimate per client instance and retries
// requests over flaky mobile links.
package kioskclient

import (
	"sync"
	"time"
)

// Quality classifies the recent connection behaviour
type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityPoor      Quality = "poor"
	QualityOffline   Quality = "offline"
)

const (
	latencyWindow = 10

	// A single dropped packet must not flip the UI to offline
	offlineThreshold = 3

	excellentLatency = 150 * time.Millisecond
	goodLatency      = 500 * time.Millisecond
)

// ConnectionTracker maintains an in-memory estimate of connection quality from
// recent request latencies and a consecutive-failure counter. It is created
// per client instance and updated on every request completion. Safe for
// concurrent use.
type ConnectionTracker struct {
	mu                  sync.Mutex
	latencies           []time.Duration
	consecutiveFailures int
}

// NewConnectionTracker creates a tracker with no history; quality starts as
// good until enough samples arrive.
func NewConnectionTracker() *ConnectionTracker {
	return &ConnectionTracker{}
}

// RecordSuccess records a completed request and its latency
func (t *ConnectionTracker) RecordSuccess(latency time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.consecutiveFailures = 0
	t.latencies = append(t.latencies, latency)
	if len(t.latencies) > latencyWindow {
		t.latencies = t.latencies[len(t.latencies)-latencyWindow:]
	}
}

// RecordFailure records a failed request
func (t *ConnectionTracker) RecordFailure() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.consecutiveFailures++
}

// Quality returns the current connection quality estimate
func (t *ConnectionTracker) Quality() Quality {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.consecutiveFailures >= offlineThreshold {
		return QualityOffline
	}
	if len(t.latencies) == 0 {
		return QualityGood
	}

	avg := t.averageLatency()
	switch {
	case avg < excellentLatency:
		return QualityExcellent
	case avg < goodLatency:
		return QualityGood
	default:
		return QualityPoor
	}
}

// RequestTimeout sizes the per-request timeout from the current quality:
// slower links get more headroom instead of spurious timeouts.
func (t *ConnectionTracker) RequestTimeout() time.Duration {
	switch t.Quality() {
	case QualityExcellent:
		return 5 * time.Second
	case QualityGood:
		return 10 * time.Second
	case QualityPoor:
		return 20 * time.Second
	default:
		return 30 * time.Second
	}
}

// ConsecutiveFailures returns the current failure streak
func (t *ConnectionTracker) ConsecutiveFailures() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.consecutiveFailures
}

func (t *ConnectionTracker) averageLatency() time.Duration {
	var total time.Duration
	for _, l := range t.latencies {
		total += l
	}
	return total / time.Duration(len(t.latencies))
}
