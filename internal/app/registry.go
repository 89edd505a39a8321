package app

import (
	"database/sql"
	"path/filepath"

	"go-leave/internal/balance"
	"go-leave/internal/category"
	"go-leave/internal/identity"
	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	identityRepo := identity.NewRepository(gormDB)
	categoryRepo := category.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(identityRepo, enforcer)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	categoryService := category.NewService(categoryRepo, rdb)
	balanceService := balance.NewService(balanceRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo)

	// --- Handlers ---
	categoryHandler := category.NewHandler(categoryService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		category.RegisterRoutes(api, categoryHandler)
		balance.RegisterRoutes(api, balanceHandler)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
	}

	return nil
}
