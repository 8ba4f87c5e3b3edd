package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/database/testutil"
	"github.com/saandeep/portfolio-api/internal/store"
)

func newProjectFixture(t *testing.T) (*ProjectService, *cache.Cache, *gorm.DB) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	c, err := cache.New(db)
	require.NoError(t, err)
	svc, err := NewProjectService(db, c, nil, nil)
	require.NoError(t, err)
	return svc, c, db
}

func TestProjectCreateAndList(t *testing.T) {
	svc, _, _ := newProjectFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProjectInput{
		Title:        "dotman",
		Description:  "dotfile manager",
		Technologies: []string{"Go", "SQLite"},
		Category:     "tooling",
		Featured:     true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	projects, err := svc.List(ctx, ListProjectsOptions{})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "dotman", projects[0].Title)
}

func TestProjectListFilters(t *testing.T) {
	svc, _, _ := newProjectFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProjectInput{Title: "a", Description: "x", Category: "web", Featured: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateProjectInput{Title: "b", Description: "y", Category: "tooling"})
	require.NoError(t, err)

	featured := true
	projects, err := svc.List(ctx, ListProjectsOptions{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "a", projects[0].Title)

	projects, err = svc.List(ctx, ListProjectsOptions{Category: "tooling"})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "b", projects[0].Title)
}

func TestProjectCreateInvalidatesCachedListing(t *testing.T) {
	svc, _, _ := newProjectFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProjectInput{Title: "first", Description: "d"})
	require.NoError(t, err)

	// Prime the cache.
	projects, err := svc.List(ctx, ListProjectsOptions{})
	require.NoError(t, err)
	require.Len(t, projects, 1)

	_, err = svc.Create(ctx, CreateProjectInput{Title: "second", Description: "d"})
	require.NoError(t, err)

	projects, err = svc.List(ctx, ListProjectsOptions{})
	require.NoError(t, err)
	require.Len(t, projects, 2)
}

func TestProjectClickCounts(t *testing.T) {
	svc, _, _ := newProjectFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProjectInput{Title: "clicky", Description: "d"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Click(ctx, created.ID)
		require.NoError(t, err)
	}

	clicks, err := svc.Click(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4), clicks)
}

func TestProjectClickUnknownID(t *testing.T) {
	svc, _, _ := newProjectFixture(t)

	_, err := svc.Click(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestProjectUpdateAndDelete(t *testing.T) {
	svc, _, _ := newProjectFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProjectInput{Title: "old", Description: "d"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, map[string]any{"title": "new"})
	require.NoError(t, err)
	require.Equal(t, "new", updated.Title)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrRecordNotFound)
}
