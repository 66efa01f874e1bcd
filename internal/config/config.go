// Package config parses command line flags and environment overrides for
// the brightcut tools.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"brightcut/internal/cheader"
	"brightcut/internal/display"
	"brightcut/internal/imageio"
)

// ErrUsage wraps every invalid command line.
var ErrUsage = errors.New("usage error")

const (
	DefaultImagePath    = "test.jpg"
	DefaultTargetPixels = 1000

	DefaultModelPattern = "*.tflite"
	DefaultHeaderPath   = "model.h"
	DefaultVarName      = "mnist_model"
)

type Threshold struct {
	ImagePath  string
	Target     int
	Decoder    string
	Display    string
	OutputPath string
	Strict     bool
}

type Header struct {
	InputPath  string
	Pattern    string
	OutputPath string
	VarName    string
	Columns    int
}

// ParseThreshold reads brightcut's flags. BRIGHTCUT_IMAGE and
// BRIGHTCUT_TARGET provide defaults that flags override.
func ParseThreshold(args []string, getenv func(string) string, output io.Writer) (*Threshold, error) {
	cfg := &Threshold{
		ImagePath: DefaultImagePath,
		Target:    DefaultTargetPixels,
		Decoder:   imageio.DecoderOpenCV,
		Display:   display.BackendOpenCV,
	}

	if v := getenv("BRIGHTCUT_IMAGE"); v != "" {
		cfg.ImagePath = v
	}
	if v := getenv("BRIGHTCUT_TARGET"); v != "" {
		target, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: BRIGHTCUT_TARGET=%q is not an integer", ErrUsage, v)
		}
		cfg.Target = target
	}

	fs := flag.NewFlagSet("brightcut", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: brightcut [flags]\n")
		fmt.Fprintf(output, "Finds the intensity cutoff that isolates the N brightest pixels of a grayscale image\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.ImagePath, "image", cfg.ImagePath, "Image to analyse.")
	fs.IntVar(&cfg.Target, "target", cfg.Target, "Number of brightest pixels to isolate.")
	fs.StringVar(&cfg.Decoder, "decoder", cfg.Decoder, "Image decoder: opencv or stdlib.")
	fs.StringVar(&cfg.Display, "display", cfg.Display, "Viewer for the result: opencv, fyne or none.")
	fs.StringVar(&cfg.OutputPath, "out", "", "Optional path for the binarized image.")
	fs.BoolVar(&cfg.Strict, "strict", false, "Fail when the image has fewer pixels than the target.")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Threshold) Validate() error {
	if c.ImagePath == "" {
		return fmt.Errorf("%w: image path is empty", ErrUsage)
	}
	if c.Target < 0 {
		return fmt.Errorf("%w: target must be >= 0, got %d", ErrUsage, c.Target)
	}
	switch c.Decoder {
	case imageio.DecoderOpenCV, imageio.DecoderStdlib:
	default:
		return fmt.Errorf("%w: unknown decoder %q", ErrUsage, c.Decoder)
	}
	switch c.Display {
	case display.BackendOpenCV, display.BackendFyne, display.BackendNone:
	default:
		return fmt.Errorf("%w: unknown display %q", ErrUsage, c.Display)
	}
	return nil
}

// ParseHeader reads model2header's flags.
func ParseHeader(args []string, output io.Writer) (*Header, error) {
	cfg := &Header{}

	fs := flag.NewFlagSet("model2header", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: model2header [flags]\n")
		fmt.Fprintf(output, "Converts a binary model file to a C header for firmware embedding\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.InputPath, "in", "", "Model file. Defaults to the first match of -pattern.")
	fs.StringVar(&cfg.Pattern, "pattern", DefaultModelPattern, "Glob used to find the model when -in is not set.")
	fs.StringVar(&cfg.OutputPath, "out", DefaultHeaderPath, "Header file to write.")
	fs.StringVar(&cfg.VarName, "var", DefaultVarName, "C variable name for the byte array.")
	fs.IntVar(&cfg.Columns, "columns", cheader.DefaultColumns, "Bytes per line.")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}

	if cfg.InputPath == "" && cfg.Pattern == "" {
		return nil, fmt.Errorf("%w: either -in or -pattern is required", ErrUsage)
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("%w: output path is empty", ErrUsage)
	}
	if cfg.VarName == "" {
		return nil, fmt.Errorf("%w: variable name is empty", ErrUsage)
	}
	if cfg.Columns <= 0 {
		return nil, fmt.Errorf("%w: columns must be positive, got %d", ErrUsage, cfg.Columns)
	}
	return cfg, nil
}
