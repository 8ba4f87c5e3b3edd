package api

import (
	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/handlers"
)

func registerContentRoutes(public, admin *gin.RouterGroup,
	skills *handlers.SkillHandler,
	achievements *handlers.AchievementHandler,
	testimonials *handlers.TestimonialHandler,
) {
	public.GET("/skills", skills.List)
	public.GET("/achievements", achievements.List)
	public.GET("/testimonials", testimonials.List)
	public.POST("/testimonials", testimonials.Submit)

	admin.POST("/skills", skills.Create)
	admin.PUT("/skills/:id", skills.Update)
	admin.DELETE("/skills/:id", skills.Delete)

	admin.POST("/achievements", achievements.Create)
	admin.PUT("/achievements/:id", achievements.Update)
	admin.DELETE("/achievements/:id", achievements.Delete)

	admin.GET("/testimonials", testimonials.List)
	admin.POST("/testimonials/:id/approve", testimonials.Approve)
	admin.DELETE("/testimonials/:id", testimonials.Delete)
}
