package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper runs the two maintenance passes on a timer: auto-completing past
// confirmed appointments and purging terminal ones past retention. Both
// passes are idempotent, so overlapping or repeated runs are harmless.
type Sweeper struct {
	svc           *Service
	log           zerolog.Logger
	interval      time.Duration
	retentionDays int
}

func NewSweeper(svc *Service, log zerolog.Logger, interval time.Duration, retentionDays int) *Sweeper {
	if interval < time.Minute {
		interval = time.Hour
	}
	if retentionDays < 1 {
		retentionDays = DefaultRetentionDays
	}
	return &Sweeper{
		svc:           svc,
		log:           log.With().Str("component", "sweeper").Logger(),
		interval:      interval,
		retentionDays: retentionDays,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("sweeper stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep. Errors are logged, not returned; the next
// tick retries.
func (s *Sweeper) RunOnce(ctx context.Context) {
	completed, err := s.svc.AutoComplete(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("auto-complete sweep failed")
	} else if completed > 0 {
		s.log.Info().Int64("completed", completed).Msg("auto-completed past appointments")
	}

	purged, err := s.svc.PurgeOld(ctx, s.retentionDays)
	if err != nil {
		s.log.Error().Err(err).Msg("purge sweep failed")
	} else if purged > 0 {
		s.log.Info().Int64("purged", purged).Msg("purged old appointments")
	}
}
