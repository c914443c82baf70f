package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/app/joinbot"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/config"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting join bot", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := joinbot.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize join bot", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("join bot stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("join bot stopped gracefully")
}
