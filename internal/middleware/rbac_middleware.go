package middleware

import (
	"net/http"

	"github.com/abbie-leigh/hr-portal/internal/domain"

	"github.com/gin-gonic/gin"
)

// RBACService is a local interface so any package with an Enforce method
// fits without importing the rbac package here.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RequireAccess(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
