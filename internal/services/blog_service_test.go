package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/database/testutil"
	"github.com/saandeep/portfolio-api/internal/store"
)

func newBlogFixture(t *testing.T) *BlogService {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	c, err := cache.New(db)
	require.NoError(t, err)
	svc, err := NewBlogService(db, c, nil, nil, nil)
	require.NoError(t, err)
	return svc
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "hello-world", Slugify("Hello, World!"))
	require.Equal(t, "go-1-24-generics", Slugify("Go 1.24 Generics"))
	require.Equal(t, "trimmed", Slugify("  Trimmed  "))
}

func TestBlogCreateAndGetBySlug(t *testing.T) {
	svc := newBlogFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, CreatePostInput{
		Title:    "Why Go?",
		Content:  "Because it compiles fast.",
		Category: "engineering",
		Tags:     []string{"go"},
		Publish:  true,
	})
	require.NoError(t, err)
	require.Equal(t, "why-go", post.Slug)
	require.NotEmpty(t, post.Excerpt)

	found, err := svc.GetBySlug(ctx, "why-go")
	require.NoError(t, err)
	require.Equal(t, post.ID, found.ID)
}

func TestBlogDraftsHiddenFromPublicListing(t *testing.T) {
	svc := newBlogFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePostInput{Title: "draft", Content: "c"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreatePostInput{Title: "live", Content: "c", Publish: true})
	require.NoError(t, err)

	public, err := svc.List(ctx, ListPostsOptions{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Equal(t, "live", public[0].Title)

	admin, err := svc.List(ctx, ListPostsOptions{IncludeDrafts: true})
	require.NoError(t, err)
	require.Len(t, admin, 2)
}

func TestBlogDraftSlugNotServed(t *testing.T) {
	svc := newBlogFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePostInput{Title: "secret draft", Content: "c"})
	require.NoError(t, err)

	_, err = svc.GetBySlug(ctx, "secret-draft")
	require.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestBlogViewAndLikeCounters(t *testing.T) {
	svc := newBlogFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, CreatePostInput{Title: "p", Content: "c", Publish: true})
	require.NoError(t, err)

	require.NoError(t, svc.View(ctx, post.ID))
	require.NoError(t, svc.View(ctx, post.ID))

	likes, err := svc.Like(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), likes)

	refreshed, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), refreshed.Views)
}

func TestBlogCommentsModeration(t *testing.T) {
	svc := newBlogFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, CreatePostInput{Title: "p", Content: "c", Publish: true})
	require.NoError(t, err)

	comment, err := svc.AddComment(ctx, post.ID, CommentInput{
		Name:    "Ada",
		Email:   "ada@example.com",
		Comment: "Nice post",
	})
	require.NoError(t, err)
	require.False(t, comment.Approved)

	visible, err := svc.Comments(ctx, post.ID, false)
	require.NoError(t, err)
	require.Empty(t, visible)

	_, err = svc.ApproveComment(ctx, comment.ID)
	require.NoError(t, err)

	visible, err = svc.Comments(ctx, post.ID, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
}

func TestBlogCommentOnMissingPost(t *testing.T) {
	svc := newBlogFixture(t)

	_, err := svc.AddComment(context.Background(), "missing", CommentInput{
		Name:    "Ada",
		Email:   "ada@example.com",
		Comment: "hi",
	})
	require.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestBlogDeleteRemovesComments(t *testing.T) {
	svc := newBlogFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, CreatePostInput{Title: "p", Content: "c", Publish: true})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, post.ID, CommentInput{Name: "A", Email: "a@b.c", Comment: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, post.ID))

	comments, err := svc.Comments(ctx, post.ID, true)
	require.NoError(t, err)
	require.Empty(t, comments)
}
