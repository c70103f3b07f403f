// Command headcount serves the live subscriber count over gRPC, Server-Sent
// Events and WebSocket.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/headcount/app"
	"github.com/dmitrymomot/headcount/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.NewApp()
	if err != nil {
		slog.Error("failed to initialize", logger.Error(err))
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		slog.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}
