package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/ai"
	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// ChatbotHandler exposes the visitor chatbot and the admin content helpers.
type ChatbotHandler struct {
	ai *ai.Service
}

// NewChatbotHandler constructs a ChatbotHandler.
func NewChatbotHandler(aiSvc *ai.Service) *ChatbotHandler {
	return &ChatbotHandler{ai: aiSvc}
}

// Chat answers a visitor question about the portfolio.
func (h *ChatbotHandler) Chat(c *gin.Context) {
	var body struct {
		Message string `json:"message" validate:"required,max=2000"`
	}
	if !bindAndValidate(c, &body) {
		return
	}

	reply := h.ai.ChatbotReply(requestContext(c), body.Message)
	response.Success(c, http.StatusOK, gin.H{"reply": reply})
}

// GenerateDescription drafts a project description for the admin editor.
func (h *ChatbotHandler) GenerateDescription(c *gin.Context) {
	var input services.CreateProjectInput
	if !bindAndValidate(c, &input) {
		return
	}

	description, err := h.ai.GenerateProjectDescription(requestContext(c), input.Title, input.Technologies)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"description": description})
}

// GenerateBlogContent drafts post content for the admin editor.
func (h *ChatbotHandler) GenerateBlogContent(c *gin.Context) {
	var body struct {
		Topic   string `json:"topic" validate:"required,max=200"`
		Outline string `json:"outline" validate:"max=2000"`
	}
	if !bindAndValidate(c, &body) {
		return
	}

	content, err := h.ai.GenerateBlogContent(requestContext(c), body.Topic, body.Outline)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"content": content})
}
