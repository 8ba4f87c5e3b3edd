package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"github.com/saandeep/portfolio-api/internal/cache"
	testutil "github.com/saandeep/portfolio-api/internal/database/testutil"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/services"
)

func TestCleanerRunOnce(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	store, err := cache.New(db)
	require.NoError(t, err)

	analyticsSvc, err := services.NewAnalyticsService(db, nil, nil)
	require.NoError(t, err)

	store.Set(context.Background(), "projects:abc", []string{"cached"}, time.Hour)
	store.Set(context.Background(), "stats:overview", map[string]int{"projects": 3}, time.Hour)

	require.NoError(t, analyticsSvc.Track(context.Background(), services.TrackInput{Page: "/old"}))
	require.NoError(t, analyticsSvc.Track(context.Background(), services.TrackInput{Page: "/fresh"}))

	stale := time.Now().AddDate(0, 0, -40)
	require.NoError(t, db.Exec(
		"UPDATE analytics_events SET created_at = ? WHERE page = ?", stale, "/old",
	).Error)

	c := NewCleaner(store, analyticsSvc,
		WithRetentionDays(30),
		WithCron(cron.New(cron.WithLogger(cron.DiscardLogger))),
	)

	require.NoError(t, c.RunOnce(context.Background()))

	var cached int64
	require.NoError(t, db.Model(&models.CacheEntry{}).Count(&cached).Error)
	require.Equal(t, int64(0), cached)

	var events []models.AnalyticsEvent
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	require.Equal(t, "/fresh", events[0].Page)
}

func TestCleanerSkipsWithoutDependencies(t *testing.T) {
	c := NewCleaner(nil, nil)

	require.NoError(t, c.Start())
	require.NoError(t, c.RunOnce(context.Background()))
	c.Stop()
}

func TestCleanerStartSchedulesJobs(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	store, err := cache.New(db)
	require.NoError(t, err)

	sched := cron.New(cron.WithLogger(cron.DiscardLogger))
	c := NewCleaner(store, nil,
		WithCron(sched),
		WithSweepSchedule("@every 1h"),
	)

	require.NoError(t, c.Start())
	require.Len(t, sched.Entries(), 1)
	<-c.Stop().Done()
}

func TestCleanerRejectsBadSchedule(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	store, err := cache.New(db)
	require.NoError(t, err)

	c := NewCleaner(store, nil, WithSweepSchedule("not a cron spec"))
	require.Error(t, c.Start())
}
