package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/notify"
	"github.com/saandeep/portfolio-api/internal/store"
	apperrors "github.com/saandeep/portfolio-api/pkg/errors"
)

// TestimonialInput describes a visitor testimonial submission.
type TestimonialInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Company string `json:"company" validate:"max=100"`
	Role    string `json:"role" validate:"max=100"`
	Message string `json:"message" validate:"required,max=2000"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
}

// TestimonialService manages visitor testimonials. Submissions are hidden
// until approved from the dashboard.
type TestimonialService struct {
	store    *store.Store[models.Testimonial]
	cache    *cache.Cache
	notifier *notify.Notifier
}

// NewTestimonialService constructs a TestimonialService.
func NewTestimonialService(db *gorm.DB, c *cache.Cache, notifier *notify.Notifier) (*TestimonialService, error) {
	if db == nil {
		return nil, errors.New("testimonial service: db is required")
	}
	testimonials, err := store.New[models.Testimonial](db)
	if err != nil {
		return nil, err
	}
	return &TestimonialService{store: testimonials, cache: c, notifier: notifier}, nil
}

// Submit stores a new testimonial awaiting approval.
func (s *TestimonialService) Submit(ctx context.Context, input TestimonialInput) (*models.Testimonial, error) {
	ctx = ensureContext(ctx)

	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewBadRequest("rating must be between 1 and 5")
	}

	testimonial := &models.Testimonial{
		Name:    strings.TrimSpace(input.Name),
		Company: strings.TrimSpace(input.Company),
		Role:    strings.TrimSpace(input.Role),
		Message: strings.TrimSpace(input.Message),
		Rating:  input.Rating,
	}
	if err := s.store.Create(ctx, testimonial); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.TestimonialReceived(ctx, testimonial)
	}
	return testimonial, nil
}

// ListApproved returns publicly visible testimonials, newest first.
func (s *TestimonialService) ListApproved(ctx context.Context) ([]models.Testimonial, error) {
	ctx = ensureContext(ctx)

	var cached []models.Testimonial
	if s.cache != nil && s.cache.Get(ctx, cache.KeyTestimonialsApproved, &cached) {
		return cached, nil
	}

	testimonials, err := s.store.Find(ctx, store.NewQuery().
		Where("approved", true).
		OrderBy("created_at", store.Descending))
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, cache.KeyTestimonialsApproved, testimonials, cache.DefaultTTL)
	}
	return testimonials, nil
}

// ListAll returns every testimonial for the dashboard, newest first.
func (s *TestimonialService) ListAll(ctx context.Context, limit int) ([]models.Testimonial, error) {
	return s.store.Find(ensureContext(ctx), store.NewQuery().
		OrderBy("created_at", store.Descending).
		Limit(clampLimit(limit)))
}

// Approve makes a testimonial publicly visible.
func (s *TestimonialService) Approve(ctx context.Context, id string) (*models.Testimonial, error) {
	ctx = ensureContext(ctx)

	testimonial, err := s.store.Update(ctx, id, map[string]any{"approved": true})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return testimonial, nil
}

// Delete removes a testimonial.
func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TestimonialService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, cache.PrefixTestimonials)
	}
}
