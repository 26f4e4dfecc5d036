package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// StartHTTPServer serves the router and blocks until SIGINT or SIGTERM,
// then drains in-flight requests within the shutdown timeout.
func StartHTTPServer(router *gin.Engine, cfg ServerConfig, audit AuditLogger) error {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		audit.Log(AuditLog{
			Action:  "server_start",
			Message: "http server listening",
			Meta:    map[string]any{"port": cfg.Port},
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		audit.Log(AuditLog{Action: "server_failed", Message: "http server exited", Meta: map[string]any{"error": err.Error()}})
		return err
	case sig := <-quit:
		audit.Log(AuditLog{
			Action:  "server_shutdown",
			Message: "shutdown signal received",
			Meta:    map[string]any{"signal": sig.String()},
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
		return err
	}

	audit.Log(AuditLog{Action: "server_stopped", Message: "http server stopped cleanly"})
	return nil
}
