package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/pkg/logger"
	"github.com/saandeep/portfolio-api/pkg/metrics"
)

// DefaultTTL applies when Set is called with a non-positive TTL.
const DefaultTTL = time.Hour

// Cache is a database-backed expiring key-value cache. Failures are never
// user-visible: every operation degrades to a miss or no-op and is only
// observable via logs. Staleness after a failed invalidation is bounded by
// the entry TTL.
type Cache struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// Option customises the Cache.
type Option func(*Cache)

// WithNow overrides the clock, primarily for expiry tests.
func WithNow(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New constructs a cache over the shared database handle.
func New(db *gorm.DB, opts ...Option) (*Cache, error) {
	if db == nil {
		return nil, errors.New("cache: db is required")
	}
	c := &Cache{
		db:  db,
		log: logger.WithModule("cache"),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get loads the value stored under key into dest and reports whether it was a
// hit. An entry found past its expiry is deleted as a side effect and
// reported as a miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	ctx = ensured(ctx)

	var entry models.CacheEntry
	err := c.db.WithContext(ctx).Take(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	if err != nil {
		c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}

	if !entry.ExpiresAt.After(c.now()) {
		c.Delete(ctx, key)
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}

	if err := json.Unmarshal(entry.Value, dest); err != nil {
		c.log.Warn("cache entry undecodable", zap.String("key", key), zap.Error(err))
		c.Delete(ctx, key)
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

// Set stores value under key with the given TTL, overwriting any existing
// entry. The write is best-effort; a failure is logged and dropped.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache set: marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	entry := models.CacheEntry{
		Key:       key,
		Value:     payload,
		ExpiresAt: c.now().Add(ttl),
	}

	err = c.db.WithContext(ensured(ctx)).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).Create(&entry).Error
	if err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes entries by exact key. Missing keys are a no-op; failures are
// logged, not raised.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	err := c.db.WithContext(ensured(ctx)).Where("key IN ?", keys).Delete(&models.CacheEntry{}).Error
	if err != nil {
		c.log.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// DeletePrefix removes every entry whose key starts with prefix. Mutation
// paths use this to invalidate a whole listing family in one statement
// instead of enumerating per-route keys.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) {
	if prefix == "" {
		return
	}
	err := c.db.WithContext(ensured(ctx)).
		Where("key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Delete(&models.CacheEntry{}).Error
	if err != nil {
		c.log.Warn("cache prefix delete failed", zap.String("prefix", prefix), zap.Error(err))
	}
}

// Sweep clears the entire cache table regardless of individual expiry. The
// daily maintenance job calls this.
func (c *Cache) Sweep(ctx context.Context) (int64, error) {
	tx := c.db.WithContext(ensured(ctx)).Where("1 = 1").Delete(&models.CacheEntry{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

func ensured(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
