package leave

import (
	"github.com/abbie-leigh/hr-portal/internal/middleware"
	"github.com/abbie-leigh/hr-portal/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		requests.GET("/summary", middleware.RequireAccess(rbacService, "leave", "read"), handler.Summary)
		requests.GET("/preview", middleware.RequireAccess(rbacService, "leave", "read"), handler.Preview)
		requests.GET("/mine", middleware.RequireAccess(rbacService, "leave", "read"), handler.GetMine)
		requests.GET("/review", middleware.RequireAccess(rbacService, "leave", "approve"), handler.ReviewQueue)
		requests.POST("",
			middleware.RequireAccess(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		requests.POST("/:id/resolve", middleware.RequireAccess(rbacService, "leave", "approve"), handler.Resolve)
		requests.DELETE("/:id", middleware.RequireAccess(rbacService, "leave", "cancel"), handler.Cancel)
	}
}
