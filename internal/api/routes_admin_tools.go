package api

import (
	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/app"
	"github.com/saandeep/portfolio-api/internal/handlers"
	"github.com/saandeep/portfolio-api/internal/images"
	"github.com/saandeep/portfolio-api/internal/notify"
)

func registerAdminToolRoutes(admin *gin.RouterGroup, cfg *app.Config, notifier *notify.Notifier) {
	upload := handlers.NewUploadHandler(images.NewProcessor(), cfg.Uploads.Dir, cfg.Uploads.MaxSizeMB)
	admin.POST("/upload", upload.Upload)
	admin.DELETE("/upload/:filename", upload.Delete)

	if notifier != nil {
		admin.POST("/notifications/test", handlers.NewNotificationHandler(notifier).Test)
	}
}
