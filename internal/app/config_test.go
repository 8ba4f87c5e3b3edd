package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saandeep/portfolio-api/internal/auth"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, 120, cfg.Server.RateLimit.Requests)
	require.Equal(t, time.Minute, cfg.Server.RateLimit.Window)
	require.Equal(t, 5, cfg.Server.RateLimit.ContactRequests)
	require.Equal(t, time.Hour, cfg.Server.RateLimit.ContactWindow)

	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "./data/portfolio.sqlite", cfg.Database.Path)

	require.Equal(t, time.Hour, cfg.Cache.TTL)
	require.Equal(t, "0 0 * * *", cfg.Cache.SweepCron)

	require.Equal(t, "portfolio-api", cfg.Auth.JWT.Issuer)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWT.TTL)

	require.False(t, cfg.Email.SMTP.Enabled)
	require.Equal(t, 587, cfg.Email.SMTP.Port)
	require.True(t, cfg.Email.SMTP.UseTLS)

	require.False(t, cfg.Discord.Enabled)
	require.False(t, cfg.AI.Enabled)
	require.Equal(t, "./data/uploads", cfg.Uploads.Dir)
	require.Equal(t, 365, cfg.Analytics.RetentionDays)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_SERVER_PORT", "9090")
	t.Setenv("PORTFOLIO_DATABASE_DRIVER", "postgres")
	t.Setenv("PORTFOLIO_AUTH_JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "env-secret", cfg.Auth.JWT.Secret)
}

func TestJWTServiceConfigFallback(t *testing.T) {
	var cfg AuthConfig
	cfg.JWT.Secret = "secret"

	jwtCfg := cfg.JWTServiceConfig()
	require.Equal(t, auth.DefaultAccessTokenTTL, jwtCfg.AccessTokenTTL)
	require.Equal(t, "secret", jwtCfg.Secret)
}

func TestDatabaseSettingsPostgres(t *testing.T) {
	cfg := DatabaseConfig{
		Driver: "postgres",
		Postgres: DBAuthConfig{
			Host:     "db.example.com",
			Port:     5433,
			Database: "portfolio",
			Username: "app",
			Password: "pw",
			SSLMode:  "require",
		},
	}

	settings := cfg.DatabaseSettings()
	require.Equal(t, "postgres", settings.Driver)
	require.Equal(t, "db.example.com", settings.Host)
	require.Equal(t, 5433, settings.Port)
	require.Equal(t, "portfolio", settings.Name)
	require.Equal(t, "require", settings.SSLMode)
}
