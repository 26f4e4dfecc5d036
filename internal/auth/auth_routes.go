package auth

import (
	"time"

	"github.com/abbie-leigh/hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	loginLimiter := middleware.RateLimitByIP(rate.Every(time.Second), 5)

	group := r.Group("/auth")
	{
		group.POST("/login", loginLimiter, handler.Login)
		group.POST("/refresh", loginLimiter, handler.Refresh)
		group.POST("/logout", handler.Logout)
		group.GET("/me", middleware.AuthMiddleware(), middleware.ExtractUserID(), handler.Me)
	}
}
