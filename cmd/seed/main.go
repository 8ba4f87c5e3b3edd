package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/app"
	"github.com/saandeep/portfolio-api/internal/database"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/pkg/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("portfolio-seed", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var configPath string
	fs.StringVar(&configPath, "config", "", "Path to configuration directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg *app.Config
	var err error
	if configPath != "" {
		cfg, err = app.LoadConfig(configPath)
	} else {
		cfg, err = app.LoadConfig()
	}
	if err != nil {
		return err
	}

	if err := app.ConfigureLogging(cfg.Server); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logger.Sync() // best effort

	db, err := database.Open(cfg.Database.DatabaseSettings())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto-migrate database: %w", err)
	}

	if err := database.SeedData(db); err != nil {
		return fmt.Errorf("seed baseline data: %w", err)
	}
	if err := seedSampleContent(db); err != nil {
		return fmt.Errorf("seed sample content: %w", err)
	}

	fmt.Println("seed complete")
	return nil
}

func seedSampleContent(db *gorm.DB) error {
	started := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	projects := []models.Project{
		{
			BaseModel:    models.BaseModel{ID: "seed-project-portfolio"},
			Title:        "Portfolio Backend",
			Description:  "REST API powering this site, with caching, analytics, and realtime updates.",
			Technologies: datatypes.NewJSONSlice([]string{"Go", "Gin", "GORM", "SQLite"}),
			Category:     "backend",
			GithubURL:    "https://github.com/saandeep/portfolio-api",
			Featured:     true,
			IsDeployed:   true,
			StartDate:    &started,
		},
		{
			BaseModel:    models.BaseModel{ID: "seed-project-dashboard"},
			Title:        "Analytics Dashboard",
			Description:  "Realtime visitor dashboard rendering page-view streams over WebSockets.",
			Technologies: datatypes.NewJSONSlice([]string{"TypeScript", "React", "WebSocket"}),
			Category:     "frontend",
			Featured:     false,
		},
	}
	for _, p := range projects {
		if err := db.Where(models.Project{BaseModel: models.BaseModel{ID: p.ID}}).
			Attrs(p).FirstOrCreate(&models.Project{}).Error; err != nil {
			return err
		}
	}

	posts := []models.BlogPost{
		{
			BaseModel: models.BaseModel{ID: "seed-post-hello"},
			Title:     "Hello, World",
			Slug:      services.Slugify("Hello, World"),
			Content:   "Welcome to the blog. Posts about Go, infrastructure, and side projects land here.",
			Excerpt:   "Welcome to the blog.",
			Category:  "general",
			Tags:      datatypes.NewJSONSlice([]string{"meta"}),
			Published: true,
		},
	}
	for _, p := range posts {
		if err := db.Where(models.BlogPost{BaseModel: models.BaseModel{ID: p.ID}}).
			Attrs(p).FirstOrCreate(&models.BlogPost{}).Error; err != nil {
			return err
		}
	}

	won := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	achievements := []models.Achievement{
		{
			BaseModel:    models.BaseModel{ID: "seed-achievement-hackathon"},
			Title:        "Regional Hackathon Winner",
			Type:         "hackathon",
			Organization: "DevFest",
			Prize:        "1st place",
			Date:         &won,
		},
	}
	for _, a := range achievements {
		if err := db.Where(models.Achievement{BaseModel: models.BaseModel{ID: a.ID}}).
			Attrs(a).FirstOrCreate(&models.Achievement{}).Error; err != nil {
			return err
		}
	}

	return nil
}
