package app

import (
	"github.com/abbie-leigh/hr-portal/internal/middleware"
	"github.com/abbie-leigh/hr-portal/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const connectRetries = 5

// BuildApp connects the backing stores and returns a router with every
// module mounted. The caller owns the listener lifecycle.
func BuildApp(cfg Config) (*gin.Engine, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		connectRetries,
	)
	if err != nil {
		return nil, err
	}

	if err := migrate(gormDB); err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		// The portal degrades without redis (no summary cache, no
		// idempotency replay) rather than refusing to start.
		zap.L().Warn("starting without redis", zap.Error(err))
		rdb = nil
	}

	router := gin.Default()
	router.Use(middleware.RequestID())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if err := registerModules(router, gormDB, rdb); err != nil {
		return nil, err
	}

	return router, nil
}
