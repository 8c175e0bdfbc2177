package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargoline/backoffice/internal/api/metrics"
)

const defaultSweepInterval = time.Hour

// OverdueMarker is the part of the document service the sweeper drives.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

// Sweeper periodically moves sent invoices past their due date to overdue.
type Sweeper struct {
	marker   OverdueMarker
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewSweeper returns a sweeper running every interval (defaultSweepInterval
// when interval <= 0).
func NewSweeper(marker OverdueMarker, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Sweeper{
		marker:   marker,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	moved, err := s.marker.MarkOverdue(ctx, s.now())
	if moved > 0 {
		metrics.OverdueSweepsTotal.Add(float64(moved))
		s.log.Info().Int("count", moved).Msg("invoices marked overdue")
	}
	if err != nil && ctx.Err() == nil {
		s.log.Error().Err(err).Msg("overdue sweep failed")
	}
}
