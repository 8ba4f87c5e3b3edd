package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PageViewInput carries the request attributes the tracker needs.
type PageViewInput struct {
	Page      string
	IP        string
	UserAgent string
	Referrer  string
}

// PageTracker records one page view. Satisfied by the analytics service via a
// small adapter in the router.
type PageTracker func(ctx context.Context, input PageViewInput)

// PageViews records successful GET requests against public content routes as
// analytics page views. Tracking runs out of band so it never adds latency to
// the page itself.
func PageViews(track PageTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if track == nil || c.Request.Method != http.MethodGet {
			return
		}
		if status := c.Writer.Status(); status < 200 || status >= 300 {
			return
		}

		input := PageViewInput{
			Page:      c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Referrer:  c.Request.Referer(),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			track(ctx, input)
		}()
	}
}
