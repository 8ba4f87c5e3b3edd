package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/saandeep/portfolio-api/internal/app"
	"github.com/saandeep/portfolio-api/internal/database"
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
	fs := flag.NewFlagSet("portfolio-createadmin", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var (
		configPath string
		username   string
		email      string
		password   string
	)
	fs.StringVar(&configPath, "config", "", "Path to configuration directory")
	fs.StringVar(&username, "username", "admin", "Admin username")
	fs.StringVar(&email, "email", "", "Admin email address")
	fs.StringVar(&password, "password", "", "Admin password (falls back to PORTFOLIO_ADMIN_PASSWORD)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if password == "" {
		password = os.Getenv("PORTFOLIO_ADMIN_PASSWORD")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is required (flag -password or PORTFOLIO_ADMIN_PASSWORD)")
	}
	if strings.TrimSpace(email) == "" {
		email = username + "@localhost"
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

	users, err := services.NewUserService(db)
	if err != nil {
		return err
	}

	user, created, err := users.EnsureAdmin(context.Background(), username, email, password)
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("admin user %q created (id %s)\n", user.Username, user.ID)
	} else {
		fmt.Printf("admin user %q already exists (id %s)\n", user.Username, user.ID)
	}
	return nil
}
