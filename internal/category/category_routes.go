package category

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	categories := r.Group("/leaves/categories")
	categories.Use(middleware.AuthMiddleware())
	{
		categories.GET("", middleware.RateLimitByUser(5, 20), handler.List)
	}
}
