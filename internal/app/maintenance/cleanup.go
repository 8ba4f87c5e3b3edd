package maintenance

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/pkg/logger"
)

const (
	defaultRetentionDays = 365
	defaultSweepSpec     = "@daily"
	defaultPruneSpec     = "@daily"
)

// Cleaner coordinates background maintenance tasks: sweeping the response
// cache and pruning analytics events past the retention window.
type Cleaner struct {
	cache     *cache.Cache
	analytics *services.AnalyticsService
	cron      *cron.Cron
	log       *zap.Logger
	enabled   bool
	retention int

	sweepSchedule string
	pruneSchedule string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithRetentionDays adjusts how long analytics events are retained.
func WithRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		if days > 0 {
			cleaner.retention = days
		}
	}
}

// WithSweepSchedule overrides the cron specification for the cache sweep.
func WithSweepSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.sweepSchedule = spec
		}
	}
}

// WithPruneSchedule overrides the cron specification for analytics pruning.
func WithPruneSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.pruneSchedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults. Any nil dependency
// results in the corresponding job being skipped.
func NewCleaner(c *cache.Cache, analytics *services.AnalyticsService, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		cache:         c,
		analytics:     analytics,
		retention:     defaultRetentionDays,
		sweepSchedule: defaultSweepSpec,
		pruneSchedule: defaultPruneSpec,
		log:           logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	cleaner.enabled = cleaner.cache != nil || cleaner.analytics != nil

	return cleaner
}

// Start registers the jobs with the cron scheduler and launches it if at
// least one job is enabled.
func (c *Cleaner) Start() error {
	if !c.enabled {
		return nil
	}

	if c.cache != nil {
		if _, err := c.cron.AddFunc(c.sweepSchedule, func() {
			ctx := context.Background()
			removed, err := c.cache.Sweep(ctx)
			if err != nil {
				c.log.Warn("cache sweep failed", zap.Error(err))
				return
			}
			c.log.Info("cache swept", zap.Int64("entries", removed))
		}); err != nil {
			return err
		}
	}

	if c.analytics != nil && c.retention > 0 {
		if _, err := c.cron.AddFunc(c.pruneSchedule, func() {
			ctx := context.Background()
			removed, err := c.analytics.Prune(ctx, c.retention)
			if err != nil {
				c.log.Warn("analytics prune failed", zap.Error(err))
				return
			}
			c.log.Info("analytics pruned", zap.Int64("events", removed))
		}); err != nil {
			return err
		}
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all configured maintenance routines sequentially.
// Primarily used in tests and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if c.cache != nil {
		if _, err := c.cache.Sweep(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if c.analytics != nil && c.retention > 0 {
		if _, err := c.analytics.Prune(ctx, c.retention); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}
