package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/ai"
	"github.com/saandeep/portfolio-api/internal/api"
	"github.com/saandeep/portfolio-api/internal/app"
	"github.com/saandeep/portfolio-api/internal/app/maintenance"
	iauth "github.com/saandeep/portfolio-api/internal/auth"
	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/database"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/notify"
	"github.com/saandeep/portfolio-api/internal/realtime"
	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/internal/store"
	"github.com/saandeep/portfolio-api/pkg/logger"
	"github.com/saandeep/portfolio-api/pkg/mail"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("portfolio-server", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var configPath string
	fs.StringVar(&configPath, "config", "", "Path to configuration directory or file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadApplicationConfig(configPath)
	if err != nil {
		return err
	}

	if err := app.ConfigureLogging(cfg.Server); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logger.Sync() // best effort

	log := logger.WithModule("bootstrap")

	if strings.TrimSpace(cfg.Auth.JWT.Secret) == "" {
		return errors.New("auth.jwt.secret must be configured")
	}

	db, err := initialiseDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db, log)

	cacheStore, err := cache.New(db)
	if err != nil {
		return fmt.Errorf("initialise cache: %w", err)
	}

	jwtService, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	if err != nil {
		return fmt.Errorf("initialise jwt service: %w", err)
	}

	mailer, err := mail.NewSMTPMailer(cfg.Email.SMTPSettings())
	if err != nil {
		return fmt.Errorf("initialise mailer: %w", err)
	}

	notifier := notify.New(notify.Config{
		Mailer:  mailer,
		OwnerTo: cfg.Email.SMTP.To,
		Discord: notify.DiscordConfig{
			Enabled:    cfg.Discord.Enabled,
			WebhookURL: cfg.Discord.WebhookURL,
		},
	})

	hub := realtime.NewHub()

	aiService, err := buildAIService(db, cfg)
	if err != nil {
		return fmt.Errorf("initialise ai service: %w", err)
	}
	if aiService != nil && aiService.Enabled() {
		log.Info("generative features enabled", zap.String("model", cfg.AI.Model))
	}

	analyticsSvc, err := services.NewAnalyticsService(db, cacheStore, hub)
	if err != nil {
		return fmt.Errorf("initialise analytics service: %w", err)
	}

	cleaner := maintenance.NewCleaner(cacheStore, analyticsSvc,
		maintenance.WithRetentionDays(cfg.Analytics.RetentionDays),
		maintenance.WithSweepSchedule(cfg.Cache.SweepCron),
	)
	if err := cleaner.Start(); err != nil {
		return fmt.Errorf("start maintenance jobs: %w", err)
	}
	defer func() {
		<-cleaner.Stop().Done()
	}()

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}

	router, err := api.NewRouter(cfg, api.Dependencies{
		DB:       db,
		Cache:    cacheStore,
		JWT:      jwtService,
		Hub:      hub,
		Notifier: notifier,
		AI:       aiService,
	})
	if err != nil {
		return fmt.Errorf("build api router: %w", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	if err, ok := <-serverErr; ok && err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}

func loadApplicationConfig(path string) (*app.Config, error) {
	switch {
	case strings.TrimSpace(path) == "":
		return app.LoadConfig()
	default:
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				return app.LoadConfig(path)
			}
			return app.LoadConfig(filepath.Dir(path))
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config path %q does not exist", path)
		}
		return nil, fmt.Errorf("stat config path: %w", err)
	}
}

func buildAIService(db *gorm.DB, cfg *app.Config) (*ai.Service, error) {
	projects, err := store.New[models.Project](db)
	if err != nil {
		return nil, err
	}
	skills, err := store.New[models.Skill](db)
	if err != nil {
		return nil, err
	}
	posts, err := store.New[models.BlogPost](db)
	if err != nil {
		return nil, err
	}

	client := ai.NewClient(ai.Config{
		Enabled: cfg.AI.Enabled,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		BaseURL: cfg.AI.BaseURL,
	})
	return ai.NewService(client, projects, skills, posts), nil
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.Database.DatabaseSettings())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", strings.ToLower(strings.TrimSpace(cfg.Database.Driver))))

	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
