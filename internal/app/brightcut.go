// Package app wires configuration, I/O and the threshold search into the
// brightcut and model2header commands.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"brightcut/internal/config"
	"brightcut/internal/display"
	"brightcut/internal/imageio"
	"brightcut/internal/logger"
	"brightcut/internal/threshold"
	"brightcut/internal/timing"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ExitCode maps an error returned by a runner to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.Is(err, config.ErrUsage):
		return ExitUsage
	default:
		return ExitError
	}
}

type ThresholdRunner struct {
	cfg    *config.Threshold
	logger logger.Logger
	loader imageio.Loader
	engine engine
	viewer display.Viewer
	saver  *imageio.Saver
	timing *timing.Tracker
	out    io.Writer
}

func NewThresholdRunner(cfg *config.Threshold, log logger.Logger, out io.Writer) (*ThresholdRunner, error) {
	loader, err := imageio.NewLoader(cfg.Decoder, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrUsage, err)
	}

	viewer, err := display.New(cfg.Display, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrUsage, err)
	}

	return &ThresholdRunner{
		cfg:    cfg,
		logger: log,
		loader: loader,
		engine: newEngine(cfg.Decoder),
		viewer: viewer,
		saver:  imageio.NewSaver(log),
		timing: timing.NewTracker(log),
		out:    out,
	}, nil
}

// Run loads the image, finds the cutoff for the configured target, reports
// it and hands the binarized image to the viewer and the optional output
// file.
func (r *ThresholdRunner) Run(ctx context.Context) (threshold.Result, error) {
	stage := r.timing.StartTiming(ctx, "load")
	img, err := r.loader.Load(r.cfg.ImagePath)
	r.timing.EndTiming(stage)
	if err != nil {
		return threshold.Result{}, err
	}

	r.logger.Info("ThresholdRunner", "image loaded", map[string]interface{}{
		"path":   img.Path,
		"width":  img.Width,
		"height": img.Height,
		"format": img.Format,
	})

	stage = r.timing.StartTiming(ctx, "histogram")
	hist, err := r.engine.Histogram(img.Gray)
	r.timing.EndTiming(stage)
	if err != nil {
		return threshold.Result{}, fmt.Errorf("histogram calculation failed: %w", err)
	}

	r.logger.Debug("ThresholdRunner", "searching threshold", map[string]interface{}{
		"target":       r.cfg.Target,
		"total_pixels": hist.Total(),
	})

	res := threshold.Find(hist, r.cfg.Target)
	if err := WriteReport(r.out, img.Width, img.Height, hist.Stats(), res); err != nil {
		return res, fmt.Errorf("failed to write report: %w", err)
	}

	if !res.Found {
		r.logger.Warning("ThresholdRunner", "image has fewer pixels than the target", map[string]interface{}{
			"target":    res.Target,
			"available": res.SelectedCount,
		})
		if r.cfg.Strict {
			return res, res.Err()
		}
	}

	stage = r.timing.StartTiming(ctx, "binarize")
	binary, err := r.engine.Binarize(img.Gray, res.Threshold)
	r.timing.EndTiming(stage)
	if err != nil {
		return res, fmt.Errorf("threshold application failed: %w", err)
	}

	if r.cfg.OutputPath != "" {
		if err := r.saver.SaveToPath(r.cfg.OutputPath, binary); err != nil {
			return res, err
		}
	}

	frames := []display.Frame{
		{Title: "Original", Image: img.Gray},
		{Title: fmt.Sprintf("Brightest %d pixels (threshold %d)", res.Target, res.Threshold), Image: binary},
	}
	if err := r.viewer.Show(ctx, frames...); err != nil {
		return res, fmt.Errorf("display failed: %w", err)
	}

	return res, nil
}
