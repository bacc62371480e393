package engine

import (
	"testing"
	"time"
)

func TestNewTickerValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewTicker(0, nil, func(time.Time) {}); err == nil {
		t.Fatalf("expected error for non-positive interval")
	}
	if _, err := NewTicker(time.Second, nil, nil); err == nil {
		t.Fatalf("expected error for missing tick function")
	}
}

func TestTickerPassesClockReading(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, time.July, 1, 7, 0, 0, 0, time.UTC)

	var observed time.Time
	ticker, err := NewTicker(time.Second, func() time.Time { return fixed }, func(now time.Time) {
		observed = now
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ticker.tick()
	if !observed.Equal(fixed) {
		t.Fatalf("expected tick to observe the injected clock, got %v", observed)
	}

	ticker.Start()
	ticker.Stop()
}
