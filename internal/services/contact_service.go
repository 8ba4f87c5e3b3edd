package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/ai"
	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/notify"
	"github.com/saandeep/portfolio-api/internal/realtime"
	"github.com/saandeep/portfolio-api/internal/store"
	apperrors "github.com/saandeep/portfolio-api/pkg/errors"
	"github.com/saandeep/portfolio-api/pkg/logger"
	"github.com/saandeep/portfolio-api/pkg/mail"
)

// ContactInput describes a contact form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactService ingests contact form submissions, triages them by
// sentiment, and fans out notifications.
type ContactService struct {
	store    *store.Store[models.ContactMessage]
	cache    *cache.Cache
	notifier *notify.Notifier
	hub      Broadcaster
	log      *zap.Logger
}

// NewContactService constructs a ContactService.
func NewContactService(db *gorm.DB, c *cache.Cache, notifier *notify.Notifier, hub Broadcaster) (*ContactService, error) {
	if db == nil {
		return nil, errors.New("contact service: db is required")
	}
	messages, err := store.New[models.ContactMessage](db)
	if err != nil {
		return nil, err
	}
	return &ContactService{
		store:    messages,
		cache:    c,
		notifier: notifier,
		hub:      hub,
		log:      logger.WithModule("contact"),
	}, nil
}

// Submit stores a new contact message and notifies the owner. The stored
// record carries a coarse sentiment label for dashboard triage.
func (s *ContactService) Submit(ctx context.Context, input ContactInput, clientIP string) (*models.ContactMessage, error) {
	ctx = ensureContext(ctx)

	msg := &models.ContactMessage{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Message:   strings.TrimSpace(input.Message),
		IP:        clientIP,
		Status:    models.ContactStatusNew,
		Sentiment: ai.AnalyzeSentiment(input.Message),
	}

	if err := s.store.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.ContactReceived(ctx, msg)
	}
	if s.hub != nil {
		s.hub.Broadcast(realtime.RoomAdmin, realtime.EventContactReceived, msg)
	}
	if s.cache != nil {
		s.cache.Delete(ctx, cache.KeyStatsOverview)
	}
	return msg, nil
}

// List returns messages for the dashboard, newest first, optionally filtered
// by status.
func (s *ContactService) List(ctx context.Context, status string, limit int) ([]models.ContactMessage, error) {
	ctx = ensureContext(ctx)

	q := store.NewQuery().OrderBy("created_at", store.Descending).Limit(clampLimit(limit))
	if status != "" {
		q = q.Where("status", status)
	}
	return s.store.Find(ctx, q)
}

// UpdateStatus moves a message through the new/read/replied workflow.
func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) (*models.ContactMessage, error) {
	switch status {
	case models.ContactStatusNew, models.ContactStatusRead, models.ContactStatusReplied:
	default:
		return nil, apperrors.NewBadRequest("status must be one of: new, read, replied")
	}

	ctx = ensureContext(ctx)
	msg, err := s.store.Update(ctx, id, map[string]any{"status": status})
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.Broadcast(realtime.RoomAdmin, realtime.EventContactUpdated, msg)
	}
	return msg, nil
}

// Reply emails a response to the sender and marks the message replied. The
// status only advances when delivery succeeds.
func (s *ContactService) Reply(ctx context.Context, id, subject, body string) (*models.ContactMessage, error) {
	ctx = ensureContext(ctx)

	msg, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(subject) == "" {
		subject = "Re: your message"
	}
	if s.notifier == nil {
		return nil, errMailUnavailable()
	}
	if err := s.notifier.SendReply(ctx, msg.Email, subject, body); err != nil {
		if errors.Is(err, mail.ErrSMTPDisabled) {
			return nil, errMailUnavailable()
		}
		s.log.Warn("contact reply failed", zap.String("id", id), zap.Error(err))
		return nil, errMailUnavailable().WithInternal(err)
	}

	return s.store.Update(ctx, id, map[string]any{"status": models.ContactStatusReplied})
}

func errMailUnavailable() *apperrors.AppError {
	return apperrors.New("MAIL_UNAVAILABLE", "Email delivery is not configured", http.StatusServiceUnavailable)
}

// Delete removes a message.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ensureContext(ctx), id)
}
