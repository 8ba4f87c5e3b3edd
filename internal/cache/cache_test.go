package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saandeep/portfolio-api/internal/database/testutil"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/store"
)

func newTestCache(t *testing.T, opts ...Option) *Cache {
	t.Helper()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	c, err := New(db, opts...)
	require.NoError(t, err)
	return c
}

func TestSetThenGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "skills:all", []string{"Go", "SQL"}, time.Second)

	var got []string
	require.True(t, c.Get(ctx, "skills:all", &got))
	require.Equal(t, []string{"Go", "SQL"}, got)
}

func TestGetAfterExpiryMissesAndEvicts(t *testing.T) {
	current := time.Now()
	c := newTestCache(t, WithNow(func() time.Time { return current }))
	ctx := context.Background()

	c.Set(ctx, "blogs:list", "payload", time.Second)

	current = current.Add(2 * time.Second)

	var got string
	require.False(t, c.Get(ctx, "blogs:list", &got))

	// The expired entry was removed on read.
	var count int64
	require.NoError(t, c.db.Model(&models.CacheEntry{}).Where("key = ?", "blogs:list").Count(&count).Error)
	require.Zero(t, count)
}

func TestDeleteThenGetAlwaysMisses(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "projects:list", 42, time.Hour)
	c.Delete(ctx, "projects:list")

	var got int
	require.False(t, c.Get(ctx, "projects:list", &got))

	// Deleting a missing key is a no-op.
	c.Delete(ctx, "projects:list")
}

func TestSetOverwritesExisting(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "stats:overview", "old", time.Hour)
	c.Set(ctx, "stats:overview", "new", time.Hour)

	var got string
	require.True(t, c.Get(ctx, "stats:overview", &got))
	require.Equal(t, "new", got)
}

func TestDeletePrefixClearsFamily(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "projects:aaa", 1, time.Hour)
	c.Set(ctx, "projects:bbb", 2, time.Hour)
	c.Set(ctx, "blogs:ccc", 3, time.Hour)

	c.DeletePrefix(ctx, PrefixProjects)

	var got int
	require.False(t, c.Get(ctx, "projects:aaa", &got))
	require.False(t, c.Get(ctx, "projects:bbb", &got))
	require.True(t, c.Get(ctx, "blogs:ccc", &got))
}

func TestSweepClearsEverythingRegardlessOfTTL(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "a", 1, time.Second)
	c.Set(ctx, "b", 2, 24*time.Hour)

	removed, err := c.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)

	var got int
	require.False(t, c.Get(ctx, "b", &got))
}

func TestListKeyIsDeterministicAndOrderInsensitive(t *testing.T) {
	a := store.NewQuery().Where("category", "web").Where("featured", true).Limit(10)
	b := store.NewQuery().Where("featured", true).Where("category", "web").Limit(10)

	require.Equal(t, ListKey("projects", a), ListKey("projects", b))

	c := store.NewQuery().Where("category", "web").Limit(10)
	require.NotEqual(t, ListKey("projects", a), ListKey("projects", c))
}
