package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubMarker struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
	hit   chan struct{}
}

func (m *stubMarker) MarkOverdue(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	m.calls = append(m.calls, now)
	m.mu.Unlock()
	select {
	case m.hit <- struct{}{}:
	default:
	}
	return 1, m.err
}

func TestSweeper_RunsImmediatelyAndOnTick(t *testing.T) {
	marker := &stubMarker{hit: make(chan struct{}, 4)}
	s := NewSweeper(marker, 10*time.Millisecond, zerolog.Nop())
	fixed := time.Date(2024, 7, 6, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-marker.hit:
		case <-time.After(2 * time.Second):
			t.Fatalf("sweep %d did not happen", i+1)
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}

	marker.mu.Lock()
	defer marker.mu.Unlock()
	if !marker.calls[0].Equal(fixed) {
		t.Errorf("expected sweep at %v, got %v", fixed, marker.calls[0])
	}
}

func TestSweeper_ErrorsDoNotStopLoop(t *testing.T) {
	marker := &stubMarker{hit: make(chan struct{}, 4), err: errors.New("db unavailable")}
	s := NewSweeper(marker, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	for i := 0; i < 3; i++ {
		select {
		case <-marker.hit:
		case <-time.After(2 * time.Second):
			t.Fatalf("sweep %d did not happen after an error", i+1)
		}
	}
}

func TestNewSweeper_DefaultInterval(t *testing.T) {
	s := NewSweeper(&stubMarker{}, 0, zerolog.Nop())
	if s.interval != defaultSweepInterval {
		t.Errorf("expected default interval %v, got %v", defaultSweepInterval, s.interval)
	}
}
