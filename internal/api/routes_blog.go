package api

import (
	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/handlers"
)

func registerBlogRoutes(public, admin *gin.RouterGroup, h *handlers.BlogHandler) {
	public.GET("/blog", h.List)
	public.GET("/blog/:slug", h.GetBySlug)

	// Post interactions address posts by identifier, away from the slug
	// namespace so the wildcards cannot collide.
	public.POST("/posts/:id/like", h.Like)
	public.GET("/posts/:id/comments", h.Comments)
	public.POST("/posts/:id/comments", h.AddComment)

	admin.GET("/blog", h.List)
	admin.POST("/blog", h.Create)
	admin.PUT("/blog/:id", h.Update)
	admin.DELETE("/blog/:id", h.Delete)
	admin.GET("/posts/:id/comments", h.Comments)
	admin.POST("/comments/:commentID/approve", h.ApproveComment)
	admin.DELETE("/comments/:commentID", h.DeleteComment)
}
