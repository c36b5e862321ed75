package kioskclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker_StartsGood(t *testing.T) {
	tracker := NewConnectionTracker()
	assert.Equal(t, QualityGood, tracker.Quality())
}

func TestTracker_QualityFromLatency(t *testing.T) {
	testCases := []struct {
		name    string
		latency time.Duration
		want    Quality
	}{
		{"Fast link", 50 * time.Millisecond, QualityExcellent},
		{"Average link", 300 * time.Millisecond, QualityGood},
		{"Slow link", 2 * time.Second, QualityPoor},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tracker := NewConnectionTracker()
			for i := 0; i < 5; i++ {
				tracker.RecordSuccess(tc.latency)
			}
			assert.Equal(t, tc.want, tracker.Quality())
		})
	}
}

func TestTracker_OfflineAfterThreeConsecutiveFailures(t *testing.T) {
	tracker := NewConnectionTracker()
	tracker.RecordSuccess(50 * time.Millisecond)

	tracker.RecordFailure()
	assert.NotEqual(t, QualityOffline, tracker.Quality(), "one dropped packet is not offline")

	tracker.RecordFailure()
	assert.NotEqual(t, QualityOffline, tracker.Quality())

	tracker.RecordFailure()
	assert.Equal(t, QualityOffline, tracker.Quality())
	assert.Equal(t, 3, tracker.ConsecutiveFailures())
}

func TestTracker_SuccessResetsFailureStreak(t *testing.T) {
	tracker := NewConnectionTracker()
	tracker.RecordFailure()
	tracker.RecordFailure()

	tracker.RecordSuccess(100 * time.Millisecond)
	assert.Zero(t, tracker.ConsecutiveFailures())

	tracker.RecordFailure()
	tracker.RecordFailure()
	assert.NotEqual(t, QualityOffline, tracker.Quality(), "streak must restart after a success")
}

func TestTracker_TimeoutSizedByQuality(t *testing.T) {
	tracker := NewConnectionTracker()

	for i := 0; i < 5; i++ {
		tracker.RecordSuccess(50 * time.Millisecond)
	}
	assert.Equal(t, 5*time.Second, tracker.RequestTimeout())

	for i := 0; i < latencyWindow; i++ {
		tracker.RecordSuccess(2 * time.Second)
	}
	assert.Equal(t, 20*time.Second, tracker.RequestTimeout())

	tracker.RecordFailure()
	tracker.RecordFailure()
	tracker.RecordFailure()
	assert.Equal(t, 30*time.Second, tracker.RequestTimeout())
}

func TestTracker_LatencyWindowSlides(t *testing.T) {
	tracker := NewConnectionTracker()

	// Old slow samples should age out of the window
	for i := 0; i < latencyWindow; i++ {
		tracker.RecordSuccess(2 * time.Second)
	}
	for i := 0; i < latencyWindow; i++ {
		tracker.RecordSuccess(50 * time.Millisecond)
	}

	assert.Equal(t, QualityExcellent, tracker.Quality())
}
