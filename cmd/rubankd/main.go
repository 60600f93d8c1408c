package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/server"
	"github.com/rublebank/rubank/internal/util/logger"
)

func main() {
	cfg := server.NewConfigFromFlags()

	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	application, err := server.New(cfg, logger.Log)
	if err != nil {
		logger.Log.Fatal("Server initialization failed", zap.Error(err))
	}
	defer application.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info("Shutting down server...")
		cancel()
	}()

	if err := application.Run(ctx); err != nil {
		logger.Log.Error("Server shutdown error", zap.Error(err))
	}
}
