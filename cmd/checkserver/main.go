package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"datacheck/internal/app"
	"datacheck/internal/infrastructure"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	application, err := app.New(*configFile)
	if err != nil {
		slog.Error("Failed to start", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger.Error("Server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
