package user

import (
	"github.com/abbie-leigh/hr-portal/internal/middleware"
	"github.com/abbie-leigh/hr-portal/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		users.GET("/me", middleware.RequireAccess(rbacService, "user", "read_self"), handler.GetMe)
		users.PATCH("/me", middleware.RequireAccess(rbacService, "user", "update_self"), handler.UpdateMe)

		users.GET("", middleware.RequireAccess(rbacService, "user", "read"), handler.GetAll)
		users.GET("/options", middleware.RequireAccess(rbacService, "user", "read"), handler.GetOptions)
		users.GET("/:id", middleware.RequireAccess(rbacService, "user", "read"), handler.GetByID)
		users.POST("", middleware.RequireAccess(rbacService, "user", "create"), handler.Create)
		users.PATCH("/:id", middleware.RequireAccess(rbacService, "user", "update"), handler.Update)
		users.DELETE("/:id", middleware.RequireAccess(rbacService, "user", "delete"), handler.Delete)
	}
}
