package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/ai"
	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/notify"
	"github.com/saandeep/portfolio-api/internal/store"
	"github.com/saandeep/portfolio-api/pkg/logger"
)

// ListProjectsOptions filters project listings.
type ListProjectsOptions struct {
	Category string
	Featured *bool
	Limit    int
}

// CreateProjectInput describes the fields needed to create a project.
type CreateProjectInput struct {
	Title        string     `json:"title" validate:"required,max=100"`
	Description  string     `json:"description" validate:"max=5000"`
	Technologies []string   `json:"technologies"`
	Category     string     `json:"category" validate:"max=50"`
	Client       string     `json:"client" validate:"max=100"`
	LiveURL      string     `json:"live_url" validate:"omitempty,url"`
	GithubURL    string     `json:"github_url" validate:"omitempty,url"`
	ImageURL     string     `json:"image_url" validate:"omitempty"`
	Featured     bool       `json:"featured"`
	IsDeployed   bool       `json:"is_deployed"`
	StartDate    *time.Time `json:"start_date"`
}

// ProjectService manages portfolio project entries. Listings are cached and
// every mutation invalidates the whole project key family.
type ProjectService struct {
	store    *store.Store[models.Project]
	cache    *cache.Cache
	notifier *notify.Notifier
	ai       *ai.Service
	log      *zap.Logger
}

// NewProjectService constructs a ProjectService.
func NewProjectService(db *gorm.DB, c *cache.Cache, notifier *notify.Notifier, aiSvc *ai.Service) (*ProjectService, error) {
	if db == nil {
		return nil, errors.New("project service: db is required")
	}
	projects, err := store.New[models.Project](db)
	if err != nil {
		return nil, err
	}
	return &ProjectService{
		store:    projects,
		cache:    c,
		notifier: notifier,
		ai:       aiSvc,
		log:      logger.WithModule("projects"),
	}, nil
}

// List returns projects matching the options, newest first.
func (s *ProjectService) List(ctx context.Context, opts ListProjectsOptions) ([]models.Project, error) {
	ctx = ensureContext(ctx)

	q := store.NewQuery().OrderBy("created_at", store.Descending).Limit(clampLimit(opts.Limit))
	if opts.Category != "" {
		q = q.Where("category", opts.Category)
	}
	if opts.Featured != nil {
		q = q.Where("featured", *opts.Featured)
	}

	key := cache.ListKey("projects", q)
	var cached []models.Project
	if s.cache != nil && s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	projects, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, projects, cache.DefaultTTL)
	}
	return projects, nil
}

// Get returns a single project by identifier.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.store.FindByID(ensureContext(ctx), id)
}

// Create inserts a new project. An empty description is filled in by the
// generative model when it is available.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	ctx = ensureContext(ctx)

	description := strings.TrimSpace(input.Description)
	if description == "" && s.ai != nil && s.ai.Enabled() {
		generated, err := s.ai.GenerateProjectDescription(ctx, input.Title, input.Technologies)
		if err != nil {
			s.log.Warn("description generation failed", zap.String("title", input.Title), zap.Error(err))
		} else {
			description = generated
		}
	}

	project := &models.Project{
		Title:        strings.TrimSpace(input.Title),
		Description:  description,
		Technologies: datatypes.NewJSONSlice(input.Technologies),
		Category:     strings.TrimSpace(input.Category),
		Client:       strings.TrimSpace(input.Client),
		LiveURL:      strings.TrimSpace(input.LiveURL),
		GithubURL:    strings.TrimSpace(input.GithubURL),
		ImageURL:     strings.TrimSpace(input.ImageURL),
		Featured:     input.Featured,
		IsDeployed:   input.IsDeployed,
		StartDate:    input.StartDate,
	}

	if err := s.store.Create(ctx, project); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return project, nil
}

// Update applies a partial update and returns the refreshed project.
func (s *ProjectService) Update(ctx context.Context, id string, changes map[string]any) (*models.Project, error) {
	ctx = ensureContext(ctx)

	project, err := s.store.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return project, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Click atomically counts a click on the project's live link and returns the
// new total. Milestone notifications fire in the background.
func (s *ProjectService) Click(ctx context.Context, id string) (int64, error) {
	ctx = ensureContext(ctx)

	if err := s.store.Increment(ctx, id, "clicks", 1); err != nil {
		return 0, err
	}

	project, err := s.store.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if s.notifier != nil {
		s.notifier.ProjectClicked(ctx, project, project.Clicks)
	}
	s.invalidate(ctx)
	return project.Clicks, nil
}

func (s *ProjectService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, cache.PrefixProjects)
		s.cache.Delete(ctx, cache.KeyStatsOverview)
	}
}
