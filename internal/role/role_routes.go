package role

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
	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	roles.Use(middleware.RequireAccess(rbacService, "role", "manage"))
	{
		roles.GET("", handler.GetAll)
		roles.GET("/:id", handler.GetByID)
		roles.POST("", handler.Create)
		roles.PATCH("/:id", handler.Update)
		roles.DELETE("/:id", handler.Delete)
	}
}
