package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/store"
	apperrors "github.com/saandeep/portfolio-api/pkg/errors"
	"github.com/saandeep/portfolio-api/pkg/logger"
)

// UserService manages admin accounts and credential checks.
type UserService struct {
	store *store.Store[models.User]
	log   *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	users, err := store.New[models.User](db)
	if err != nil {
		return nil, err
	}
	return &UserService{store: users, log: logger.WithModule("users")}, nil
}

// Authenticate verifies credentials and stamps the login time. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	ctx = ensureContext(ctx)

	users, err := s.store.Find(ctx, store.NewQuery().Where("username", strings.TrimSpace(username)).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		// Burn a hash comparison so the timing does not reveal whether the
		// username exists.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000uGZwLVVtC8kCCRqVhqLOwyQ5XWZuXO2"), []byte(password))
		return nil, apperrors.ErrInvalidCredentials
	}

	user := users[0]
	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	updated, err := s.store.Update(ctx, user.ID, map[string]any{"last_login_at": now})
	if err != nil {
		// Login still succeeds if only the stamp failed.
		s.log.Warn("login stamp failed", zap.String("user_id", user.ID), zap.Error(err))
		return &user, nil
	}
	return updated, nil
}

// Profile returns an account by identifier.
func (s *UserService) Profile(ctx context.Context, id string) (*models.User, error) {
	return s.store.FindByID(ensureContext(ctx), id)
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, id, current, next string) error {
	ctx = ensureContext(ctx)

	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return apperrors.ErrInvalidCredentials
	}
	if len(next) < 8 {
		return apperrors.NewBadRequest("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.store.Update(ctx, id, map[string]any{"password": string(hash)})
	return err
}

// EnsureAdmin creates the admin account when absent. Existing accounts are
// left untouched, making it safe to run on every boot and from the CLI.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) (*models.User, bool, error) {
	ctx = ensureContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, false, apperrors.NewBadRequest("username and password are required")
	}

	existing, err := s.store.Find(ctx, store.NewQuery().Where("username", username).Limit(1))
	if err != nil {
		return nil, false, err
	}
	if len(existing) > 0 {
		return &existing[0], false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	user := &models.User{
		Username: username,
		Email:    strings.TrimSpace(email),
		Password: string(hash),
		Role:     "admin",
		IsActive: true,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}
