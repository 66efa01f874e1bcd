package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"brightcut/internal/app"
	"brightcut/internal/config"
	"brightcut/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewConsoleLogger(logger.LevelFromEnv(os.Getenv))

	cfg, err := config.ParseThreshold(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		code := app.ExitCode(err)
		if code != app.ExitOK {
			log.Error("Main", err, nil)
		}
		return code
	}

	log.Debug("Main", "starting", map[string]interface{}{
		"image":      cfg.ImagePath,
		"target":     cfg.Target,
		"decoder":    cfg.Decoder,
		"display":    cfg.Display,
		"go_version": runtime.Version(),
	})

	runner, err := app.NewThresholdRunner(cfg, log, os.Stdout)
	if err != nil {
		log.Error("Main", err, nil)
		return app.ExitCode(err)
	}

	if _, err := runner.Run(ctx); err != nil {
		log.Error("Main", err, map[string]interface{}{
			"image":   cfg.ImagePath,
			"decoder": cfg.Decoder,
		})
		return app.ExitCode(err)
	}

	return app.ExitOK
}
