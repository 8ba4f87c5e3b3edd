package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/middleware"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUserID returns the authenticated account identifier, empty for
// anonymous requests.
func currentUserID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(middleware.CtxUserIDKey)
}

// isAdminRequest reports whether the request passed the auth middleware.
// Routes mixing public and admin views use it to widen the response.
func isAdminRequest(c *gin.Context) bool {
	return currentUserID(c) != ""
}
