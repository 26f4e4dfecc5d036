package main

import (
	"github.com/abbie-leigh/hr-portal/internal/app"
	"github.com/abbie-leigh/hr-portal/internal/bootstrap"
	"github.com/abbie-leigh/hr-portal/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg := app.LoadConfig()

	router, err := app.BuildApp(cfg)
	if err != nil {
		logger.Fatal("app build failed", zap.Error(err))
	}

	audit := bootstrap.NewStdoutAuditLogger(logger)
	if err := bootstrap.StartHTTPServer(router, bootstrap.ServerConfig{Port: cfg.Port}, audit); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
