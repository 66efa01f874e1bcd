package app

import (
	"fmt"
	"io"
	"os"

	"brightcut/internal/cheader"
	"brightcut/internal/config"
	"brightcut/internal/logger"
)

type HeaderRunner struct {
	cfg    *config.Header
	logger logger.Logger
	out    io.Writer
}

func NewHeaderRunner(cfg *config.Header, log logger.Logger, out io.Writer) *HeaderRunner {
	return &HeaderRunner{cfg: cfg, logger: log, out: out}
}

// Run writes the configured model as a C header and returns the path of
// the model it picked.
func (r *HeaderRunner) Run() (string, error) {
	model := r.cfg.InputPath
	if model == "" {
		found, err := cheader.FindModel(r.cfg.Pattern)
		if err != nil {
			return "", err
		}
		model = found
	}

	fmt.Fprintf(r.out, "Found model: %s\n", model)
	fmt.Fprintf(r.out, "Converting to %s...\n", r.cfg.OutputPath)

	data, err := os.ReadFile(model)
	if err != nil {
		return model, fmt.Errorf("failed to read model: %w", err)
	}

	file, err := os.Create(r.cfg.OutputPath)
	if err != nil {
		return model, fmt.Errorf("failed to create header: %w", err)
	}

	if err := cheader.Encode(file, r.cfg.VarName, data, r.cfg.Columns); err != nil {
		file.Close()
		return model, fmt.Errorf("failed to write header: %w", err)
	}
	if err := file.Close(); err != nil {
		return model, fmt.Errorf("failed to close header: %w", err)
	}

	r.logger.Info("HeaderRunner", "header written", map[string]interface{}{
		"model":    model,
		"header":   r.cfg.OutputPath,
		"variable": cheader.Identifier(r.cfg.VarName),
		"bytes":    len(data),
	})

	fmt.Fprintf(r.out, "Wrote %s (%d bytes). Copy it into the firmware project.\n", r.cfg.OutputPath, len(data))
	return model, nil
}
