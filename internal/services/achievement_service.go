package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/store"
)

// AchievementInput describes an achievement create payload.
type AchievementInput struct {
	Title        string     `json:"title" validate:"required,max=200"`
	Type         string     `json:"type" validate:"max=50"`
	Organization string     `json:"organization" validate:"max=100"`
	Prize        string     `json:"prize" validate:"max=100"`
	Date         *time.Time `json:"date"`
	Description  string     `json:"description" validate:"max=5000"`
}

// AchievementService manages hackathon wins, certifications, and awards.
type AchievementService struct {
	store *store.Store[models.Achievement]
	cache *cache.Cache
}

// NewAchievementService constructs an AchievementService.
func NewAchievementService(db *gorm.DB, c *cache.Cache) (*AchievementService, error) {
	if db == nil {
		return nil, errors.New("achievement service: db is required")
	}
	achievements, err := store.New[models.Achievement](db)
	if err != nil {
		return nil, err
	}
	return &AchievementService{store: achievements, cache: c}, nil
}

// List returns achievements, most recent first, optionally filtered by type.
func (s *AchievementService) List(ctx context.Context, achievementType string) ([]models.Achievement, error) {
	ctx = ensureContext(ctx)

	q := store.NewQuery().OrderBy("date", store.Descending)
	if achievementType != "" {
		q = q.Where("type", achievementType)
	}

	key := cache.ListKey("achievements", q)
	var cached []models.Achievement
	if s.cache != nil && s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	achievements, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, achievements, cache.DefaultTTL)
	}
	return achievements, nil
}

// Create inserts an achievement.
func (s *AchievementService) Create(ctx context.Context, input AchievementInput) (*models.Achievement, error) {
	ctx = ensureContext(ctx)

	achievement := &models.Achievement{
		Title:        strings.TrimSpace(input.Title),
		Type:         strings.TrimSpace(input.Type),
		Organization: strings.TrimSpace(input.Organization),
		Prize:        strings.TrimSpace(input.Prize),
		Date:         input.Date,
		Description:  strings.TrimSpace(input.Description),
	}
	if err := s.store.Create(ctx, achievement); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return achievement, nil
}

// Update applies a partial update.
func (s *AchievementService) Update(ctx context.Context, id string, changes map[string]any) (*models.Achievement, error) {
	ctx = ensureContext(ctx)

	achievement, err := s.store.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return achievement, nil
}

// Delete removes an achievement.
func (s *AchievementService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AchievementService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, cache.PrefixAchievements)
		s.cache.Delete(ctx, cache.KeyStatsOverview)
	}
}
