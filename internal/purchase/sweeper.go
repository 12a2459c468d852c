package purchase

import (
	"context"
	"time"
)

// RunSweeper periodically expires stale initiated purchases until ctx is
// cancelled. Confirm re-checks the deadline itself, so the sweep is a
// housekeeping measure, not a correctness requirement.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, err := s.ExpireStale(ctx)
			if err != nil {
				s.logger.Error("expiry sweep failed", "error", err)
			}
		}
	}
}
