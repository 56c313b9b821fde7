package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/five82/atlas/internal/logging"
	"github.com/five82/atlas/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Minute

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Minute},
		{"negative failures", -1, 2 * time.Minute},
		{"one failure", 1, 4 * time.Minute},
		{"two failures", 2, 8 * time.Minute},
		{"three failures", 3, 16 * time.Minute},
		{"four failures capped", 4, 30 * time.Minute}, // Would be 32m, capped to 30m
		{"many failures capped", 10, 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Minute
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeRefresher struct {
	mu       sync.Mutex
	calls    int
	failures int
}

func (f *fakeRefresher) Refresh(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
}

func (f *fakeRefresher) Snapshot() state.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := state.Snapshot{ConsecutiveFailures: f.failures}
	if f.failures > 0 {
		snap.LastError = errors.New("offline")
	}
	return snap
}

func (f *fakeRefresher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestStartRefresher_RefreshesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &fakeRefresher{}

	StartRefresher(ctx, store, 5*time.Millisecond, logging.Discard())
	assert.Eventually(t, func() bool { return store.count() >= 3 }, time.Second, time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	settled := store.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, store.count(), "no refreshes after cancel")
}

func TestStartRefresher_DisabledWithoutInterval(t *testing.T) {
	store := &fakeRefresher{}
	StartRefresher(context.Background(), store, 0, logging.Discard())
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, store.count())
}
