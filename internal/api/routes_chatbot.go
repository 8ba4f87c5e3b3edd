package api

import (
	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/handlers"
)

func registerChatbotRoutes(public, admin *gin.RouterGroup, h *handlers.ChatbotHandler) {
	public.POST("/chatbot", h.Chat)

	admin.POST("/ai/project-description", h.GenerateDescription)
	admin.POST("/ai/blog-content", h.GenerateBlogContent)
}
