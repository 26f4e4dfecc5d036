package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/abbie-leigh/hr-portal/internal/app"

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunWorker(ctx, app.LoadConfig()); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("worker exited", zap.Error(err))
	}
}
