package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/saandeep/portfolio-api/internal/ai"
	"github.com/saandeep/portfolio-api/internal/app"
	iauth "github.com/saandeep/portfolio-api/internal/auth"
	"github.com/saandeep/portfolio-api/internal/cache"
	"github.com/saandeep/portfolio-api/internal/handlers"
	"github.com/saandeep/portfolio-api/internal/middleware"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/notify"
	"github.com/saandeep/portfolio-api/internal/realtime"
	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/internal/store"
)

// Dependencies carries the long-lived collaborators the router wires into
// handlers. Everything is constructed once in cmd/server.
type Dependencies struct {
	DB       *gorm.DB
	Cache    *cache.Cache
	JWT      *iauth.JWTService
	Hub      *realtime.Hub
	Notifier *notify.Notifier
	AI       *ai.Service
}

// NewRouter builds the Gin engine, wires middleware, and registers all
// routes.
func NewRouter(cfg *app.Config, deps Dependencies) (*gin.Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if deps.JWT == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}

	// A nil *realtime.Hub must not become a non-nil Broadcaster interface.
	var hub services.Broadcaster
	if deps.Hub != nil {
		hub = deps.Hub
	}

	aiSvc := deps.AI
	if aiSvc == nil {
		var err error
		aiSvc, err = disabledAIService(deps.DB)
		if err != nil {
			return nil, err
		}
	}

	projectSvc, err := services.NewProjectService(deps.DB, deps.Cache, deps.Notifier, aiSvc)
	if err != nil {
		return nil, err
	}
	blogSvc, err := services.NewBlogService(deps.DB, deps.Cache, deps.Notifier, hub, aiSvc)
	if err != nil {
		return nil, err
	}
	contactSvc, err := services.NewContactService(deps.DB, deps.Cache, deps.Notifier, hub)
	if err != nil {
		return nil, err
	}
	skillSvc, err := services.NewSkillService(deps.DB, deps.Cache)
	if err != nil {
		return nil, err
	}
	achievementSvc, err := services.NewAchievementService(deps.DB, deps.Cache)
	if err != nil {
		return nil, err
	}
	testimonialSvc, err := services.NewTestimonialService(deps.DB, deps.Cache, deps.Notifier)
	if err != nil {
		return nil, err
	}
	analyticsSvc, err := services.NewAnalyticsService(deps.DB, deps.Cache, hub)
	if err != nil {
		return nil, err
	}
	statsSvc, err := services.NewStatsService(deps.DB, deps.Cache)
	if err != nil {
		return nil, err
	}
	userSvc, err := services.NewUserService(deps.DB)
	if err != nil {
		return nil, err
	}
	accounts, err := store.New[models.User](deps.DB)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.FrontendOrigin))
	r.Use(middleware.RateLimit(cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window))

	r.NoRoute(middleware.NotFoundHandler)

	r.GET("/health", handlers.Health(deps.DB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", cfg.Uploads.Dir)

	requireAuth := middleware.Auth(deps.JWT, accounts)

	public := r.Group("/api")
	public.Use(middleware.PageViews(pageTracker(analyticsSvc)))

	admin := r.Group("/api/admin")
	admin.Use(requireAuth)

	contactLimit := middleware.RateLimit(cfg.Server.RateLimit.ContactRequests, cfg.Server.RateLimit.ContactWindow)
	if cfg.Server.RateLimit.ContactWindow <= 0 {
		contactLimit = middleware.RateLimit(5, time.Hour)
	}

	registerAuthRoutes(public, admin, handlers.NewAuthHandler(userSvc, deps.JWT))
	registerProjectRoutes(public, admin, handlers.NewProjectHandler(projectSvc))
	registerBlogRoutes(public, admin, handlers.NewBlogHandler(blogSvc))
	registerContactRoutes(public, admin, handlers.NewContactHandler(contactSvc), contactLimit)
	registerContentRoutes(public, admin,
		handlers.NewSkillHandler(skillSvc),
		handlers.NewAchievementHandler(achievementSvc),
		handlers.NewTestimonialHandler(testimonialSvc))
	registerAnalyticsRoutes(public, admin, handlers.NewAnalyticsHandler(analyticsSvc, statsSvc))
	registerChatbotRoutes(public, admin, handlers.NewChatbotHandler(aiSvc))
	registerAdminToolRoutes(admin, cfg, deps.Notifier)

	if deps.Hub != nil {
		r.GET("/ws", handlers.NewRealtimeHandler(deps.Hub, deps.JWT).Serve)
	}

	return r, nil
}

// disabledAIService builds an AI service whose client always reports
// ErrDisabled, so chat and generation endpoints degrade gracefully.
func disabledAIService(db *gorm.DB) (*ai.Service, error) {
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
	return ai.NewService(ai.NewClient(ai.Config{}), projects, skills, posts), nil
}

// pageTracker adapts the analytics service to the page-view middleware.
func pageTracker(analytics *services.AnalyticsService) middleware.PageTracker {
	return func(ctx context.Context, input middleware.PageViewInput) {
		_ = analytics.Track(ctx, services.TrackInput{
			Page:      input.Page,
			IP:        input.IP,
			UserAgent: input.UserAgent,
			Referrer:  input.Referrer,
		})
	}
}
