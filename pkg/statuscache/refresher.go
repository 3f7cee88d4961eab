package statuscache

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// RefreshFunc re-queries the live status of one provider.
type RefreshFunc func(ctx context.Context, providerID string) (ProviderStatus, error)

// Refresher re-queries expired cache entries on a fixed interval, but only
// while the cache has seen recent activity. It is disabled under tests for
// determinism; tests drive RunOnce directly.
type Refresher struct {
	cache    *Cache
	refresh  RefreshFunc
	interval time.Duration
	disabled bool
	cron     *cron.Cron
	logger   zerolog.Logger
}

// RefresherConfig wires a Refresher.
type RefresherConfig struct {
	Cache    *Cache
	Refresh  RefreshFunc
	Interval time.Duration
	Disabled bool
	Logger   zerolog.Logger
}

// NewRefresher creates a background refresher.
func NewRefresher(cfg RefresherConfig) (*Refresher, error) {
	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if cfg.Refresh == nil {
		return nil, fmt.Errorf("refresh function is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}

	return &Refresher{
		cache:    cfg.Cache,
		refresh:  cfg.Refresh,
		interval: cfg.Interval,
		disabled: cfg.Disabled,
		logger:   cfg.Logger.With().Str("component", "statusrefresher").Logger(),
	}, nil
}

// Start schedules the refresh cycle. A disabled refresher starts as a no-op.
func (r *Refresher) Start() error {
	if r.disabled {
		r.logger.Info().Msg("Background status refresh disabled")
		return nil
	}

	r.cron = cron.New()
	if _, err := r.cron.AddFunc(fmt.Sprintf("@every %s", r.interval), func() {
		r.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("failed to schedule status refresh: %w", err)
	}
	r.cron.Start()

	r.logger.Info().Dur("interval", r.interval).Msg("Background status refresh started")
	return nil
}

// Stop halts the refresh cycle and waits for a running cycle to finish.
func (r *Refresher) Stop() {
	if r.cron == nil {
		return
	}
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.cron = nil
}

// RunOnce executes one refresh cycle: expired keys only, and only when
// somebody is watching. A concurrent ForceRefresh racing this cycle is
// benign; both are idempotent.
func (r *Refresher) RunOnce(ctx context.Context) {
	if !r.cache.RecentlyActive() {
		r.logger.Debug().Msg("Skipping status refresh, no recent activity")
		return
	}

	for _, providerID := range r.cache.ExpiredKeys() {
		status, err := r.refresh(ctx, providerID)
		if err != nil {
			// Keep the stale entry servable as a fallback.
			r.logger.Warn().
				Err(err).
				Str("provider", providerID).
				Msg("Status refresh failed, keeping stale entry")
			continue
		}
		r.cache.Set(providerID, status)
		r.logger.Debug().Str("provider", providerID).Msg("Provider status refreshed")
	}
}
