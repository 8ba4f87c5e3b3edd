package api

import (
	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/handlers"
)

func registerAuthRoutes(public, admin *gin.RouterGroup, h *handlers.AuthHandler) {
	public.POST("/auth/login", h.Login)

	admin.GET("/me", h.Me)
	admin.POST("/password", h.ChangePassword)
}
