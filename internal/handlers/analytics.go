package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// AnalyticsHandler exposes event tracking and the traffic dashboard.
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
	stats     *services.StatsService
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(analytics *services.AnalyticsService, stats *services.StatsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, stats: stats}
}

// Track records a visitor event.
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var input services.TrackInput
	if !bindAndValidate(c, &input) {
		return
	}
	input.IP = c.ClientIP()
	input.UserAgent = c.GetHeader("User-Agent")

	if err := h.analytics.Track(requestContext(c), input); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"tracked": true})
}

// Dashboard returns the traffic aggregate.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.analytics.Dashboard(requestContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dashboard)
}

// Events returns raw events, optionally filtered by page or country.
func (h *AnalyticsHandler) Events(c *gin.Context) {
	events, err := h.analytics.ListEvents(requestContext(c),
		c.Query("page"), c.Query("country"), parseIntQuery(c, "limit", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, events, &response.Meta{Total: int64(len(events))})
}

// Overview returns the site-wide content summary.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := h.stats.Overview(requestContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, overview)
}
