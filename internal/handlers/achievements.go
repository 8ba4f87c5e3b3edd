package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// AchievementHandler exposes achievement routes.
type AchievementHandler struct {
	achievements *services.AchievementService
}

// NewAchievementHandler constructs an AchievementHandler.
func NewAchievementHandler(achievements *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievements: achievements}
}

// List returns achievements, optionally filtered by type.
func (h *AchievementHandler) List(c *gin.Context) {
	achievements, err := h.achievements.List(requestContext(c), c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, achievements)
}

// Create inserts an achievement.
func (h *AchievementHandler) Create(c *gin.Context) {
	var input services.AchievementInput
	if !bindAndValidate(c, &input) {
		return
	}

	achievement, err := h.achievements.Create(requestContext(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, achievement)
}

// Update applies a partial update.
func (h *AchievementHandler) Update(c *gin.Context) {
	var changes map[string]any
	if err := c.ShouldBindJSON(&changes); err != nil {
		respondError(c, err)
		return
	}

	achievement, err := h.achievements.Update(requestContext(c), c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, achievement)
}

// Delete removes an achievement.
func (h *AchievementHandler) Delete(c *gin.Context) {
	if err := h.achievements.Delete(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Achievement deleted")
}
