package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saandeep/portfolio-api/internal/models"
)

func TestOpenDefaultsToSQLite(t *testing.T) {
	db, err := Open(Config{})
	require.NoError(t, err)
	require.NotNil(t, db)
	require.NoError(t, Close(db))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
}

func TestAutoMigrateAndSeed(t *testing.T) {
	db, err := Open(Config{Driver: "sqlite", DSN: "file::memory:?_foreign_keys=1"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, AutoMigrateAndSeed(db))

	var count int64
	require.NoError(t, db.Model(&models.Skill{}).Count(&count).Error)
	require.GreaterOrEqual(t, count, int64(3))

	// Seeding twice must not duplicate rows.
	require.NoError(t, SeedData(db))
	var again int64
	require.NoError(t, db.Model(&models.Skill{}).Count(&again).Error)
	require.Equal(t, count, again)
}
