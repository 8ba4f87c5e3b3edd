package api

import (
	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/handlers"
)

func registerAnalyticsRoutes(public, admin *gin.RouterGroup, h *handlers.AnalyticsHandler) {
	public.POST("/analytics/track", h.Track)
	public.GET("/stats", h.Overview)

	admin.GET("/analytics/dashboard", h.Dashboard)
	admin.GET("/analytics/events", h.Events)
	admin.GET("/stats", h.Overview)
}
