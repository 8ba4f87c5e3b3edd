package api

import (
	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/handlers"
)

func registerContactRoutes(public, admin *gin.RouterGroup, h *handlers.ContactHandler, limit gin.HandlerFunc) {
	public.POST("/contact", limit, h.Submit)

	admin.GET("/messages", h.List)
	admin.PUT("/messages/:id/status", h.UpdateStatus)
	admin.POST("/messages/:id/reply", h.Reply)
	admin.DELETE("/messages/:id", h.Delete)
}
