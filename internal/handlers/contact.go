package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// ContactHandler exposes the contact form and its admin workflow.
type ContactHandler struct {
	contact *services.ContactService
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(contact *services.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Submit accepts a contact form submission.
func (h *ContactHandler) Submit(c *gin.Context) {
	var input services.ContactInput
	if !bindAndValidate(c, &input) {
		return
	}

	if _, err := h.contact.Submit(requestContext(c), input, c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Message sent successfully!")
}

// List returns messages for the dashboard.
func (h *ContactHandler) List(c *gin.Context) {
	messages, err := h.contact.List(requestContext(c), c.Query("status"), parseIntQuery(c, "limit", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, messages, &response.Meta{Total: int64(len(messages))})
}

// UpdateStatus moves a message through the triage workflow.
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if !bindAndValidate(c, &body) {
		return
	}

	msg, err := h.contact.UpdateStatus(requestContext(c), c.Param("id"), body.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msg)
}

// Reply emails a response to the sender and marks the message replied.
func (h *ContactHandler) Reply(c *gin.Context) {
	var body struct {
		Subject string `json:"subject" validate:"max=200"`
		Message string `json:"message" validate:"required,max=10000"`
	}
	if !bindAndValidate(c, &body) {
		return
	}

	msg, err := h.contact.Reply(requestContext(c), c.Param("id"), body.Subject, body.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msg)
}

// Delete removes a message.
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contact.Delete(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Message deleted")
}
