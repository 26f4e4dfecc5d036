package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	departments.Use(middleware.RequireAccess(rbacService, "department", "manage"))
	{
		departments.GET("", handler.GetAll)
		departments.GET("/:id", handler.GetByID)
		departments.POST("", handler.Create)
		departments.PATCH("/:id", handler.Update)
		departments.DELETE("/:id", handler.Delete)
	}
}
