package handlers

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/saandeep/portfolio-api/internal/auth"
	"github.com/saandeep/portfolio-api/internal/realtime"
	apperrors "github.com/saandeep/portfolio-api/pkg/errors"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// RealtimeHandler upgrades WebSocket connections into hub rooms.
type RealtimeHandler struct {
	hub *realtime.Hub
	jwt *iauth.JWTService
}

// NewRealtimeHandler constructs a RealtimeHandler.
func NewRealtimeHandler(hub *realtime.Hub, jwt *iauth.JWTService) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, jwt: jwt}
}

// Serve joins the visitor to a room. The admin room requires a valid access
// token passed as a query parameter, since browsers cannot set headers on
// WebSocket dials.
func (h *RealtimeHandler) Serve(c *gin.Context) {
	room := c.DefaultQuery("room", realtime.RoomPublic)

	if room == realtime.RoomAdmin {
		token := c.Query("token")
		if _, err := h.jwt.ValidateAccessToken(token); err != nil {
			response.Error(c, apperrors.ErrUnauthorized)
			return
		}
	}

	h.hub.Serve(room, c.Writer, c.Request)
}
