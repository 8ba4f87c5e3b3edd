package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saandeep/portfolio-api/internal/database/testutil"
	apperrors "github.com/saandeep/portfolio-api/pkg/errors"
)

func newUserFixture(t *testing.T) *UserService {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewUserService(db)
	require.NoError(t, err)
	return svc
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc := newUserFixture(t)
	ctx := context.Background()

	user, created, err := svc.EnsureAdmin(ctx, "admin", "admin@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "admin", user.Role)

	again, created, err := svc.EnsureAdmin(ctx, "admin", "other@example.com", "different")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, user.ID, again.ID)
	require.Equal(t, "admin@example.com", again.Email)
}

func TestAuthenticate(t *testing.T) {
	svc := newUserFixture(t)
	ctx := context.Background()

	_, _, err := svc.EnsureAdmin(ctx, "admin", "admin@example.com", "s3cret-pass")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "admin", "s3cret-pass")
	require.NoError(t, err)
	require.NotNil(t, user.LastLoginAt)

	_, err = svc.Authenticate(ctx, "admin", "wrong")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ghost", "s3cret-pass")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc := newUserFixture(t)
	ctx := context.Background()

	user, _, err := svc.EnsureAdmin(ctx, "admin", "admin@example.com", "s3cret-pass")
	require.NoError(t, err)

	require.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "wrong", "new-password"), apperrors.ErrInvalidCredentials)
	require.Error(t, svc.ChangePassword(ctx, user.ID, "s3cret-pass", "short"))
	require.NoError(t, svc.ChangePassword(ctx, user.ID, "s3cret-pass", "new-password"))

	_, err = svc.Authenticate(ctx, "admin", "new-password")
	require.NoError(t, err)
}
