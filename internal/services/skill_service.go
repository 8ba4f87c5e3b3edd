package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/store"
)

// SkillInput describes a skill create payload.
type SkillInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"max=50"`
	Level    int    `json:"level" validate:"min=0,max=100"`
	Order    int    `json:"order"`
	Icon     string `json:"icon" validate:"max=100"`
}

// SkillService manages the skills list. The full list is cached under one
// key since it is small and read on every page load.
type SkillService struct {
	store *store.Store[models.Skill]
	cache *cache.Cache
}

// NewSkillService constructs a SkillService.
func NewSkillService(db *gorm.DB, c *cache.Cache) (*SkillService, error) {
	if db == nil {
		return nil, errors.New("skill service: db is required")
	}
	skills, err := store.New[models.Skill](db)
	if err != nil {
		return nil, err
	}
	return &SkillService{store: skills, cache: c}, nil
}

// List returns all skills in display order.
func (s *SkillService) List(ctx context.Context) ([]models.Skill, error) {
	ctx = ensureContext(ctx)

	var cached []models.Skill
	if s.cache != nil && s.cache.Get(ctx, cache.KeySkillsAll, &cached) {
		return cached, nil
	}

	skills, err := s.store.Find(ctx, store.NewQuery().OrderBy("sort_order", store.Ascending))
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, cache.KeySkillsAll, skills, cache.DefaultTTL)
	}
	return skills, nil
}

// Create inserts a skill.
func (s *SkillService) Create(ctx context.Context, input SkillInput) (*models.Skill, error) {
	ctx = ensureContext(ctx)

	skill := &models.Skill{
		Name:     strings.TrimSpace(input.Name),
		Category: strings.TrimSpace(input.Category),
		Level:    input.Level,
		Order:    input.Order,
		Icon:     strings.TrimSpace(input.Icon),
	}
	if err := s.store.Create(ctx, skill); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return skill, nil
}

// Update applies a partial update.
func (s *SkillService) Update(ctx context.Context, id string, changes map[string]any) (*models.Skill, error) {
	ctx = ensureContext(ctx)

	skill, err := s.store.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return skill, nil
}

// Delete removes a skill.
func (s *SkillService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *SkillService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, cache.PrefixSkills)
		s.cache.Delete(ctx, cache.KeyStatsOverview)
	}
}
