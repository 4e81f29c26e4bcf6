package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/aussiebroadwan/autoescuela/pkg/slogx"
)

const (
	DefaultHousekeepingInterval = time.Hour
	// DefaultInviteRetention keeps expired invites around long enough for
	// staff to see that a student never redeemed.
	DefaultInviteRetention = 30 * 24 * time.Hour
)

// HousekeepingService periodically deletes invites that expired more than
// Retention ago, used or not.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Now       func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService applies defaults for non-positive durations.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = DefaultHousekeepingInterval
	}
	if retention <= 0 {
		retention = DefaultInviteRetention
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HousekeepingService{
		Store:     st,
		Logger:    logger.With(slogx.Module("housekeeping")),
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		slog.Duration("interval", s.Interval),
		slog.Duration("retention", s.Retention),
	)
}

// Stop blocks until an in-progress pass has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	_, _ = s.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			_, _ = s.RunOnce(ctx)
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce performs a single cleanup pass and reports how many invites went.
func (s *HousekeepingService) RunOnce(ctx context.Context) (int64, error) {
	cutoff := clock(s.Now).Add(-s.Retention)

	n, err := s.Store.Invites().DeleteExpiredInvites(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete expired invites", slogx.Err(err))
		return 0, storageErr("delete expired invites", err)
	}

	s.Logger.Info("housekeeping pass completed",
		slog.Int64("invites_deleted", n),
		slog.Time("cutoff", cutoff),
	)
	return n, nil
}
