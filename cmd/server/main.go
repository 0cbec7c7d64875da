package main

import (
	"context"
	"embed"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pentolab/pentomino-server/internal/app"
	"github.com/pentolab/pentomino-server/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	opts := &slog.HandlerOptions{}
	if config.Development() {
		opts.Level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := app.New(logger, migrations).Start(ctx); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
