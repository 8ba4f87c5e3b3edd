package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// TestimonialHandler exposes testimonial routes.
type TestimonialHandler struct {
	testimonials *services.TestimonialService
}

// NewTestimonialHandler constructs a TestimonialHandler.
func NewTestimonialHandler(testimonials *services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials}
}

// List returns approved testimonials publicly; the admin surface sees all.
func (h *TestimonialHandler) List(c *gin.Context) {
	ctx := requestContext(c)

	if isAdminRequest(c) {
		testimonials, err := h.testimonials.ListAll(ctx, parseIntQuery(c, "limit", 0))
		if err != nil {
			respondError(c, err)
			return
		}
		response.Success(c, http.StatusOK, testimonials)
		return
	}

	testimonials, err := h.testimonials.ListApproved(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, testimonials)
}

// Submit accepts a visitor testimonial.
func (h *TestimonialHandler) Submit(c *gin.Context) {
	var input services.TestimonialInput
	if !bindAndValidate(c, &input) {
		return
	}

	if _, err := h.testimonials.Submit(requestContext(c), input); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Testimonial submitted for review")
}

// Approve makes a testimonial publicly visible.
func (h *TestimonialHandler) Approve(c *gin.Context) {
	testimonial, err := h.testimonials.Approve(requestContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, testimonial)
}

// Delete removes a testimonial.
func (h *TestimonialHandler) Delete(c *gin.Context) {
	if err := h.testimonials.Delete(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Testimonial deleted")
}
