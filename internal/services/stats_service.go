package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/store"
)

// Overview is the site-wide content summary shown on the dashboard landing
// page.
type Overview struct {
	Projects             int64 `json:"projects"`
	DistinctClients      int64 `json:"distinct_clients"`
	TotalClicks          int64 `json:"total_clicks"`
	PublishedPosts       int64 `json:"published_posts"`
	DraftPosts           int64 `json:"draft_posts"`
	TotalPostViews       int64 `json:"total_post_views"`
	Skills               int64 `json:"skills"`
	Achievements         int64 `json:"achievements"`
	Hackathons           int64 `json:"hackathons"`
	Certifications       int64 `json:"certifications"`
	ApprovedTestimonials int64 `json:"approved_testimonials"`
	PendingTestimonials  int64 `json:"pending_testimonials"`
	UnreadMessages       int64 `json:"unread_messages"`
	PendingComments      int64 `json:"pending_comments"`
	ExperienceYears      int   `json:"experience_years"`

	TopSkills          []models.Skill       `json:"top_skills"`
	RecentAchievements []models.Achievement `json:"recent_achievements"`
}

// StatsService aggregates content counts across all collections.
type StatsService struct {
	db           *gorm.DB
	projects     *store.Store[models.Project]
	posts        *store.Store[models.BlogPost]
	skills       *store.Store[models.Skill]
	achievements *store.Store[models.Achievement]
	testimonials *store.Store[models.Testimonial]
	messages     *store.Store[models.ContactMessage]
	comments     *store.Store[models.Comment]
	cache        *cache.Cache
	now          func() time.Time
}

// NewStatsService constructs a StatsService.
func NewStatsService(db *gorm.DB, c *cache.Cache) (*StatsService, error) {
	if db == nil {
		return nil, errors.New("stats service: db is required")
	}

	projects, err := store.New[models.Project](db)
	if err != nil {
		return nil, err
	}
	posts, err := store.New[models.BlogPost](db)
	if err != nil {
		return nil, err
	}
	skills, err := store.New[models.Skill](db)
	if err != nil {
		return nil, err
	}
	achievements, err := store.New[models.Achievement](db)
	if err != nil {
		return nil, err
	}
	testimonials, err := store.New[models.Testimonial](db)
	if err != nil {
		return nil, err
	}
	messages, err := store.New[models.ContactMessage](db)
	if err != nil {
		return nil, err
	}
	comments, err := store.New[models.Comment](db)
	if err != nil {
		return nil, err
	}

	return &StatsService{
		db:           db,
		projects:     projects,
		posts:        posts,
		skills:       skills,
		achievements: achievements,
		testimonials: testimonials,
		messages:     messages,
		comments:     comments,
		cache:        c,
		now:          time.Now,
	}, nil
}

// Overview computes the content summary, served from cache when fresh.
func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	ctx = ensureContext(ctx)

	var cached Overview
	if s.cache != nil && s.cache.Get(ctx, cache.KeyStatsOverview, &cached) {
		return &cached, nil
	}

	var (
		overview Overview
		err      error
	)

	if overview.Projects, err = s.projects.Count(ctx, store.NewQuery()); err != nil {
		return nil, err
	}
	if overview.PublishedPosts, err = s.posts.Count(ctx, store.NewQuery().Where("published", true)); err != nil {
		return nil, err
	}
	if overview.DraftPosts, err = s.posts.Count(ctx, store.NewQuery().Where("published", false)); err != nil {
		return nil, err
	}
	if overview.Skills, err = s.skills.Count(ctx, store.NewQuery()); err != nil {
		return nil, err
	}
	if overview.Achievements, err = s.achievements.Count(ctx, store.NewQuery()); err != nil {
		return nil, err
	}
	if overview.ApprovedTestimonials, err = s.testimonials.Count(ctx, store.NewQuery().Where("approved", true)); err != nil {
		return nil, err
	}
	if overview.PendingTestimonials, err = s.testimonials.Count(ctx, store.NewQuery().Where("approved", false)); err != nil {
		return nil, err
	}
	if overview.UnreadMessages, err = s.messages.Count(ctx, store.NewQuery().Where("status", models.ContactStatusNew)); err != nil {
		return nil, err
	}
	if overview.PendingComments, err = s.comments.Count(ctx, store.NewQuery().Where("approved", false)); err != nil {
		return nil, err
	}
	if overview.Hackathons, err = s.achievements.Count(ctx, store.NewQuery().Where("type", "hackathon")); err != nil {
		return nil, err
	}
	if overview.Certifications, err = s.achievements.Count(ctx, store.NewQuery().Where("type", "certification")); err != nil {
		return nil, err
	}

	if overview.TopSkills, err = s.skills.Find(ctx, store.NewQuery().OrderBy("level", store.Descending).Limit(5)); err != nil {
		return nil, err
	}
	if overview.RecentAchievements, err = s.achievements.Find(ctx, store.NewQuery().OrderBy("date", store.Descending).Limit(5)); err != nil {
		return nil, err
	}
	overview.ExperienceYears, err = s.experienceYears(ctx)
	if err != nil {
		return nil, err
	}

	if err = s.db.WithContext(ctx).Model(&models.Project{}).
		Select("COUNT(DISTINCT client)").
		Where("client <> ?", "").
		Scan(&overview.DistinctClients).Error; err != nil {
		return nil, err
	}
	if err = s.db.WithContext(ctx).Model(&models.Project{}).
		Select("COALESCE(SUM(clicks), 0)").
		Scan(&overview.TotalClicks).Error; err != nil {
		return nil, err
	}
	if err = s.db.WithContext(ctx).Model(&models.BlogPost{}).
		Select("COALESCE(SUM(views), 0)").
		Scan(&overview.TotalPostViews).Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cache.KeyStatsOverview, overview, dashboardTTL)
	}
	return &overview, nil
}

// experienceYears derives professional experience from the earliest project
// start date. Zero when no project carries one.
func (s *StatsService) experienceYears(ctx context.Context) (int, error) {
	var first models.Project
	err := s.db.WithContext(ctx).
		Where("start_date IS NOT NULL").
		Order("start_date asc").
		Take(&first).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if first.StartDate == nil {
		return 0, nil
	}

	years := 0
	for t := first.StartDate.AddDate(1, 0, 0); !t.After(s.now()); t = t.AddDate(1, 0, 0) {
		years++
	}
	return years, nil
}
