package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// SkillHandler exposes skill routes.
type SkillHandler struct {
	skills *services.SkillService
}

// NewSkillHandler constructs a SkillHandler.
func NewSkillHandler(skills *services.SkillService) *SkillHandler {
	return &SkillHandler{skills: skills}
}

// List returns all skills in display order.
func (h *SkillHandler) List(c *gin.Context) {
	skills, err := h.skills.List(requestContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, skills)
}

// Create inserts a skill.
func (h *SkillHandler) Create(c *gin.Context) {
	var input services.SkillInput
	if !bindAndValidate(c, &input) {
		return
	}

	skill, err := h.skills.Create(requestContext(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, skill)
}

// Update applies a partial update.
func (h *SkillHandler) Update(c *gin.Context) {
	var changes map[string]any
	if err := c.ShouldBindJSON(&changes); err != nil {
		respondError(c, err)
		return
	}

	skill, err := h.skills.Update(requestContext(c), c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, skill)
}

// Delete removes a skill.
func (h *SkillHandler) Delete(c *gin.Context) {
	if err := h.skills.Delete(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Skill deleted")
}
