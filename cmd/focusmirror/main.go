package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/focusmirror/focusmirror/adapter/cli"
	"github.com/focusmirror/focusmirror/internal/app"
	"github.com/focusmirror/focusmirror/pkg/config"
	"github.com/focusmirror/focusmirror/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		// Commands that need storage will report this themselves.
		logger.Warn("application container unavailable", "error", err)
	} else {
		cli.SetContainer(container)
		defer container.Close()
	}

	cli.Execute(ctx)
}
