package api

import (
	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/handlers"
)

func registerProjectRoutes(public, admin *gin.RouterGroup, h *handlers.ProjectHandler) {
	public.GET("/projects", h.List)
	public.GET("/projects/:id", h.Get)
	public.POST("/projects/:id/click", h.Click)

	admin.POST("/projects", h.Create)
	admin.PUT("/projects/:id", h.Update)
	admin.DELETE("/projects/:id", h.Delete)
}
