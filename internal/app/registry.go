package app

import (
	"github.com/abbie-leigh/hr-portal/internal/auth"
	"github.com/abbie-leigh/hr-portal/internal/department"
	"github.com/abbie-leigh/hr-portal/internal/leave"
	"github.com/abbie-leigh/hr-portal/internal/messaging/kafka"
	"github.com/abbie-leigh/hr-portal/internal/rbac"
	"github.com/abbie-leigh/hr-portal/internal/role"
	"github.com/abbie-leigh/hr-portal/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// registerModules builds every repository, service and handler and mounts
// the route groups under /api/v1. Construction order matters only where a
// module consumes another's interface (leave reads the user directory).
func registerModules(router *gin.Engine, gormDB *gorm.DB, rdb *redis.Client) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	userRepo := user.NewRepository(gormDB)
	userService := user.NewService(userRepo, rdb)
	userHandler := user.NewHandler(userService)

	directory := user.NewDirectory(userRepo)

	leaveRepo := leave.NewRepository(gormDB)
	leaveService := leave.NewServiceWithOutbox(sqlDB, leaveRepo, directory, outboxRepo, rdb)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)

	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	departmentRepo := department.NewRepository(gormDB)
	departmentService := department.NewService(departmentRepo)
	departmentHandler := department.NewHandler(departmentService)

	roleRepo := role.NewRepository(gormDB)
	roleService := role.NewService(roleRepo)
	roleHandler := role.NewHandler(roleService)

	api := router.Group("/api/v1")

	auth.RegisterRoutes(api, authHandler)
	user.RegisterRoutes(api, userHandler, rbacService)
	leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
	department.RegisterRoutes(api, departmentHandler, rbacService)
	role.RegisterRoutes(api, roleHandler, rbacService)

	return nil
}
