package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// ProjectHandler exposes project routes.
type ProjectHandler struct {
	projects *services.ProjectService
}

// NewProjectHandler constructs a ProjectHandler.
func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List returns projects, optionally filtered by category and featured flag.
func (h *ProjectHandler) List(c *gin.Context) {
	opts := services.ListProjectsOptions{
		Category: c.Query("category"),
		Featured: parseBoolQuery(c, "featured"),
		Limit:    parseIntQuery(c, "limit", 0),
	}

	projects, err := h.projects.List(requestContext(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, projects, &response.Meta{Total: int64(len(projects))})
}

// Get returns a single project.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.Get(requestContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, project)
}

// Create inserts a new project.
func (h *ProjectHandler) Create(c *gin.Context) {
	var input services.CreateProjectInput
	if !bindAndValidate(c, &input) {
		return
	}

	project, err := h.projects.Create(requestContext(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, project)
}

// Update applies a partial update from a JSON object of column changes.
func (h *ProjectHandler) Update(c *gin.Context) {
	var changes map[string]any
	if err := c.ShouldBindJSON(&changes); err != nil {
		respondError(c, err)
		return
	}

	project, err := h.projects.Update(requestContext(c), c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, project)
}

// Delete removes a project.
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Project deleted")
}

// Click counts a visit to the project's live link.
func (h *ProjectHandler) Click(c *gin.Context) {
	clicks, err := h.projects.Click(requestContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"clicks": clicks})
}
