package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/app"
	"github.com/rublebank/rubank/internal/util/logger"
)

func main() {
	cfg := app.NewConfigFromFlags()

	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	application, err := app.New(cfg, logger.Log)
	if err != nil {
		logger.Log.Fatal("Client initialization failed", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx); err != nil && err != context.Canceled {
		logger.Log.Fatal("Client failed", zap.Error(err))
	}
}
