package balance

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	balances := r.Group("/leaves/balance")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", middleware.RateLimitByUser(5, 20), handler.ListOwn)
	}
}
