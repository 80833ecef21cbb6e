package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/yanqian/multilingual-summarizer/internal/infra/clipboard"
)

func main() {
	// A missing .env file is fine for the CLI.
	_ = godotenv.Load()

	cmd := newRootCmd(func(logger *slog.Logger) clipboardWriter {
		return clipboard.NewCopier(logger)
	})
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
