package leave

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes memasang dua permukaan: /leaves untuk pemilik request dan
// /manage/leaves untuk supervisor. Endpoint supervisor dijaga RBAC, endpoint
// pemilik cukup autentikasi karena service membatasi ke request miliknya.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		leaves.GET("", middleware.RateLimitByUser(3, 10), handler.GetAllOwn)
		leaves.GET("/:id", middleware.RateLimitByUser(3, 10), handler.GetById)
		leaves.POST("", middleware.RateLimitByUser(0.5, 2), middleware.Idempotency(rdb), handler.Create)
		leaves.PUT("/:id", middleware.RateLimitByUser(0.5, 2), handler.Update)
		leaves.DELETE("/:id", middleware.RateLimitByUser(0.5, 2), handler.Delete)
	}

	manage := r.Group("/manage/leaves")
	manage.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		manage.GET("", middleware.RBACAuthorize(rbacService, "leave", "read_all"), middleware.RateLimitByUser(3, 10), handler.ListSubmitted)
		manage.PATCH("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), middleware.RateLimitByUser(1, 5), handler.Approve)
		manage.PATCH("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), middleware.RateLimitByUser(1, 5), handler.Reject)
	}
}
