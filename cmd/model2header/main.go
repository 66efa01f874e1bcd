package main

import (
	"os"

	"brightcut/internal/app"
	"brightcut/internal/config"
	"brightcut/internal/logger"
)

func main() {
	log := logger.NewConsoleLogger(logger.LevelFromEnv(os.Getenv))

	cfg, err := config.ParseHeader(os.Args[1:], os.Stderr)
	if err != nil {
		code := app.ExitCode(err)
		if code != app.ExitOK {
			log.Error("Main", err, nil)
		}
		os.Exit(code)
	}

	if _, err := app.NewHeaderRunner(cfg, log, os.Stdout).Run(); err != nil {
		log.Error("Main", err, map[string]interface{}{"pattern": cfg.Pattern})
		os.Exit(app.ExitCode(err))
	}
}
