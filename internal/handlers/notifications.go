package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/internal/notify"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// NotificationHandler lets the admin surface exercise the outbound channels.
type NotificationHandler struct {
	notifier *notify.Notifier
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notifier *notify.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// Test sends a test message through email and Discord so the admin can
// verify delivery configuration without waiting for real traffic.
func (h *NotificationHandler) Test(c *gin.Context) {
	var body struct {
		Message string `json:"message" validate:"max=500"`
	}
	if !bindAndValidate(c, &body) {
		return
	}
	if body.Message == "" {
		body.Message = "Test notification from the portfolio backend"
	}

	h.notifier.ContactReceived(requestContext(c), &models.ContactMessage{
		Name:    "Notification test",
		Email:   "noreply@localhost",
		Message: body.Message,
	})
	response.Message(c, http.StatusOK, "Test notification dispatched")
}
