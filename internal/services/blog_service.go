package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/ai"
	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/notify"
	"github.com/saandeep/portfolio-api/internal/realtime"
	"github.com/saandeep/portfolio-api/internal/store"
	"github.com/saandeep/portfolio-api/pkg/logger"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// ListPostsOptions filters blog listings.
type ListPostsOptions struct {
	Category      string
	IncludeDrafts bool
	Limit         int
}

// CreatePostInput describes the fields needed to create a blog post.
type CreatePostInput struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Content  string   `json:"content" validate:"required"`
	Excerpt  string   `json:"excerpt" validate:"max=320"`
	Category string   `json:"category" validate:"max=50"`
	Tags     []string `json:"tags"`
	Publish  bool     `json:"publish"`
}

// CommentInput describes a visitor comment submission.
type CommentInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

// BlogService manages posts and their comments. Published listings are
// cached; comments are held until approved.
type BlogService struct {
	posts    *store.Store[models.BlogPost]
	comments *store.Store[models.Comment]
	cache    *cache.Cache
	notifier *notify.Notifier
	hub      Broadcaster
	ai       *ai.Service
	log      *zap.Logger
}

// NewBlogService constructs a BlogService.
func NewBlogService(db *gorm.DB, c *cache.Cache, notifier *notify.Notifier, hub Broadcaster, aiSvc *ai.Service) (*BlogService, error) {
	if db == nil {
		return nil, errors.New("blog service: db is required")
	}
	posts, err := store.New[models.BlogPost](db)
	if err != nil {
		return nil, err
	}
	comments, err := store.New[models.Comment](db)
	if err != nil {
		return nil, err
	}
	return &BlogService{
		posts:    posts,
		comments: comments,
		cache:    c,
		notifier: notifier,
		hub:      hub,
		ai:       aiSvc,
		log:      logger.WithModule("blog"),
	}, nil
}

// List returns posts, newest first. Drafts are only included when requested
// by the admin surface, and draft listings bypass the cache.
func (s *BlogService) List(ctx context.Context, opts ListPostsOptions) ([]models.BlogPost, error) {
	ctx = ensureContext(ctx)

	q := store.NewQuery().OrderBy("created_at", store.Descending).Limit(clampLimit(opts.Limit))
	if !opts.IncludeDrafts {
		q = q.Where("published", true)
	}
	if opts.Category != "" {
		q = q.Where("category", opts.Category)
	}

	if opts.IncludeDrafts {
		return s.posts.Find(ctx, q)
	}

	key := cache.ListKey("blogs", q)
	var cached []models.BlogPost
	if s.cache != nil && s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	posts, err := s.posts.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, posts, cache.DefaultTTL)
	}
	return posts, nil
}

// Get returns a post by identifier.
func (s *BlogService) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	return s.posts.FindByID(ensureContext(ctx), id)
}

// GetBySlug returns a published post by its slug.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	ctx = ensureContext(ctx)

	posts, err := s.posts.Find(ctx, store.NewQuery().Where("slug", slug).Where("published", true).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, store.ErrRecordNotFound
	}
	return &posts[0], nil
}

// Create inserts a new post. SEO metadata is generated when absent, falling
// back to the title and a truncated excerpt of the content.
func (s *BlogService) Create(ctx context.Context, input CreatePostInput) (*models.BlogPost, error) {
	ctx = ensureContext(ctx)

	excerpt := strings.TrimSpace(input.Excerpt)
	if excerpt == "" {
		excerpt = clipRunes(input.Content, 280)
	}

	post := &models.BlogPost{
		Title:     strings.TrimSpace(input.Title),
		Slug:      Slugify(input.Title),
		Content:   input.Content,
		Excerpt:   excerpt,
		Category:  strings.TrimSpace(input.Category),
		Tags:      datatypes.NewJSONSlice(input.Tags),
		Published: input.Publish,
	}

	if s.ai != nil {
		tags := s.ai.GenerateSEOTags(ctx, post.Title, post.Content)
		post.SEOTitle = tags.Title
		post.SEODescription = tags.Description
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	if post.Published && s.notifier != nil {
		s.notifier.BlogPublished(ctx, post)
	}
	return post, nil
}

// Update applies a partial update. Publishing an unpublished post announces
// it.
func (s *BlogService) Update(ctx context.Context, id string, changes map[string]any) (*models.BlogPost, error) {
	ctx = ensureContext(ctx)

	before, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	if !before.Published && post.Published && s.notifier != nil {
		s.notifier.BlogPublished(ctx, post)
	}
	return post, nil
}

// Delete removes a post and its comments.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	comments, err := s.comments.Find(ctx, store.NewQuery().Where("blog_post_id", id))
	if err == nil {
		for _, c := range comments {
			_ = s.comments.Delete(ctx, c.ID)
		}
	}

	s.invalidate(ctx)
	return nil
}

// View atomically counts a read and returns nothing; missing posts are
// reported so handlers can 404.
func (s *BlogService) View(ctx context.Context, id string) error {
	return s.posts.Increment(ensureContext(ctx), id, "views", 1)
}

// Like atomically counts a like and returns the new total.
func (s *BlogService) Like(ctx context.Context, id string) (int64, error) {
	ctx = ensureContext(ctx)

	if err := s.posts.Increment(ctx, id, "likes", 1); err != nil {
		return 0, err
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return post.Likes, nil
}

// AddComment stores a visitor comment pending approval.
func (s *BlogService) AddComment(ctx context.Context, postID string, input CommentInput) (*models.Comment, error) {
	ctx = ensureContext(ctx)

	// The post reference is unconstrained in the schema, so verify it here.
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		BlogPostID: postID,
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Comment:    strings.TrimSpace(input.Comment),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(realtime.RoomAdmin, realtime.EventCommentPosted, comment)
	}
	return comment, nil
}

// Comments returns comments for a post, oldest first. Unapproved comments
// are only visible to the admin surface.
func (s *BlogService) Comments(ctx context.Context, postID string, includeUnapproved bool) ([]models.Comment, error) {
	ctx = ensureContext(ctx)

	q := store.NewQuery().Where("blog_post_id", postID).OrderBy("created_at", store.Ascending)
	if !includeUnapproved {
		q = q.Where("approved", true)
	}
	return s.comments.Find(ctx, q)
}

// ApproveComment marks a comment as publicly visible.
func (s *BlogService) ApproveComment(ctx context.Context, commentID string) (*models.Comment, error) {
	return s.comments.Update(ensureContext(ctx), commentID, map[string]any{"approved": true})
}

// DeleteComment removes a comment.
func (s *BlogService) DeleteComment(ctx context.Context, commentID string) error {
	return s.comments.Delete(ensureContext(ctx), commentID)
}

func (s *BlogService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, cache.PrefixBlogs)
		s.cache.Delete(ctx, cache.KeyStatsOverview)
	}
}

// Slugify converts a title into a URL-safe slug.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

func clipRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
