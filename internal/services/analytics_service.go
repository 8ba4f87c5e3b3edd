package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/realtime"
	"github.com/saandeep/portfolio-api/internal/store"
	"github.com/saandeep/portfolio-api/pkg/logger"
	"github.com/saandeep/portfolio-api/pkg/metrics"
)

// dashboardTTL keeps the dashboard aggregate fresh without recomputing it on
// every poll.
const dashboardTTL = 5 * time.Minute

// TrackInput describes one visitor interaction.
type TrackInput struct {
	Page      string         `json:"page" validate:"required,max=255"`
	Event     string         `json:"event" validate:"max=100"`
	Data      map[string]any `json:"data"`
	Referrer  string         `json:"referrer" validate:"max=512"`
	Country   string         `json:"country" validate:"max=64"`
	City      string         `json:"city" validate:"max=128"`
	IP        string         `json:"-"`
	UserAgent string         `json:"-"`
}

// Dashboard aggregates traffic for the admin dashboard.
type Dashboard struct {
	ViewsToday   int64                   `json:"views_today"`
	ViewsWeek    int64                   `json:"views_week"`
	ViewsTotal   int64                   `json:"views_total"`
	TotalEvents  int64                   `json:"total_events"`
	TopPages     []PageViewCount         `json:"top_pages"`
	RecentEvents []models.AnalyticsEvent `json:"recent_events"`
}

// PageViewCount is one page's daily-aggregated view total.
type PageViewCount struct {
	Page  string `json:"page"`
	Views int64  `json:"views"`
}

// AnalyticsService records visitor events and aggregates them for the
// dashboard. Daily counters are incremented server-side so concurrent
// tracking requests are never lost.
type AnalyticsService struct {
	db     *gorm.DB
	events *store.Store[models.AnalyticsEvent]
	cache  *cache.Cache
	hub    Broadcaster
	now    func() time.Time
	log    *zap.Logger
}

// AnalyticsOption customises the AnalyticsService.
type AnalyticsOption func(*AnalyticsService)

// WithAnalyticsNow overrides the clock, primarily for day-boundary tests.
func WithAnalyticsNow(now func() time.Time) AnalyticsOption {
	return func(s *AnalyticsService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(db *gorm.DB, c *cache.Cache, hub Broadcaster, opts ...AnalyticsOption) (*AnalyticsService, error) {
	if db == nil {
		return nil, errors.New("analytics service: db is required")
	}
	events, err := store.New[models.AnalyticsEvent](db)
	if err != nil {
		return nil, err
	}
	s := &AnalyticsService{
		db:     db,
		events: events,
		cache:  c,
		hub:    hub,
		now:    time.Now,
		log:    logger.WithModule("analytics"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Track records one event. Page views additionally bump the per-page and
// site-wide daily counters atomically.
func (s *AnalyticsService) Track(ctx context.Context, input TrackInput) error {
	ctx = ensureContext(ctx)

	event := &models.AnalyticsEvent{
		Page:      input.Page,
		Event:     input.Event,
		Data:      datatypes.JSONMap(input.Data),
		IP:        input.IP,
		UserAgent: input.UserAgent,
		Country:   input.Country,
		City:      input.City,
		Referrer:  input.Referrer,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return err
	}

	if input.Event == "" || input.Event == "page_view" {
		day := s.now().UTC().Format("2006-01-02")
		if err := s.bumpDailyStat(ctx, day, input.Page); err != nil {
			return err
		}
		if err := s.bumpDailyStat(ctx, day, ""); err != nil {
			return err
		}
		metrics.PageViews.WithLabelValues(input.Page).Inc()
	}

	if s.hub != nil {
		s.hub.Broadcast(realtime.RoomAdmin, realtime.EventPageView, map[string]string{
			"page":    input.Page,
			"country": input.Country,
		})
	}
	if s.cache != nil {
		s.cache.Delete(ctx, cache.KeyAnalyticsDashboard)
	}
	return nil
}

// bumpDailyStat increments a daily counter row, creating it on first view.
// The addition happens inside the database so concurrent requests never lose
// an increment.
func (s *AnalyticsService) bumpDailyStat(ctx context.Context, day, page string) error {
	stat := models.DailyStat{Date: day, Page: page, Views: 1}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "page"}},
			DoUpdates: clause.Assignments(map[string]any{"views": gorm.Expr("views + 1")}),
		}).Create(&stat).Error
}

// ViewsToday returns the site-wide counter for the current day.
func (s *AnalyticsService) ViewsToday(ctx context.Context) (int64, error) {
	var stat models.DailyStat
	day := s.now().UTC().Format("2006-01-02")
	err := s.db.WithContext(ensureContext(ctx)).
		Where("date = ? AND page = ?", day, "").
		Take(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return stat.Views, nil
}

// Dashboard computes the traffic aggregate, served from cache when fresh.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	ctx = ensureContext(ctx)

	var cached Dashboard
	if s.cache != nil && s.cache.Get(ctx, cache.KeyAnalyticsDashboard, &cached) {
		return &cached, nil
	}

	now := s.now().UTC()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")

	var dashboard Dashboard

	if err := s.db.WithContext(ctx).Model(&models.DailyStat{}).
		Select("COALESCE(SUM(views), 0)").
		Where("date = ? AND page = ?", today, "").
		Scan(&dashboard.ViewsToday).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.DailyStat{}).
		Select("COALESCE(SUM(views), 0)").
		Where("date >= ? AND page = ?", weekAgo, "").
		Scan(&dashboard.ViewsWeek).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.DailyStat{}).
		Select("COALESCE(SUM(views), 0)").
		Where("page = ?", "").
		Scan(&dashboard.ViewsTotal).Error; err != nil {
		return nil, err
	}

	total, err := s.events.Count(ctx, store.NewQuery())
	if err != nil {
		return nil, err
	}
	dashboard.TotalEvents = total

	if err := s.db.WithContext(ctx).Model(&models.DailyStat{}).
		Select("page, SUM(views) AS views").
		Where("page <> ?", "").
		Group("page").
		Order("views DESC").
		Limit(10).
		Scan(&dashboard.TopPages).Error; err != nil {
		return nil, err
	}

	recent, err := s.events.Find(ctx, store.NewQuery().
		OrderBy("created_at", store.Descending).
		Limit(20))
	if err != nil {
		return nil, err
	}
	dashboard.RecentEvents = recent

	if s.cache != nil {
		s.cache.Set(ctx, cache.KeyAnalyticsDashboard, dashboard, dashboardTTL)
	}
	return &dashboard, nil
}

// ListEvents returns raw events for the dashboard, newest first, optionally
// filtered by page or country.
func (s *AnalyticsService) ListEvents(ctx context.Context, page, country string, limit int) ([]models.AnalyticsEvent, error) {
	ctx = ensureContext(ctx)

	q := store.NewQuery().OrderBy("created_at", store.Descending).Limit(clampLimit(limit))
	if page != "" {
		q = q.Where("page", page)
	}
	if country != "" {
		q = q.Where("country", country)
	}
	return s.events.Find(ctx, q)
}

// Prune removes raw events older than the retention window. Aggregated daily
// counters are kept.
func (s *AnalyticsService) Prune(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := s.now().UTC().AddDate(0, 0, -retentionDays)
	tx := s.db.WithContext(ensureContext(ctx)).
		Where("created_at < ?", cutoff).
		Delete(&models.AnalyticsEvent{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
