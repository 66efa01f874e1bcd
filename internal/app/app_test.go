package app

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brightcut/internal/config"
	"brightcut/internal/histogram"
	"brightcut/internal/imageio"
	"brightcut/internal/logger"
	"brightcut/internal/threshold"
)

// gradientPNG writes a 16x16 image holding every intensity exactly once.
func gradientPNG(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}

	path := filepath.Join(dir, "gradient.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func newRunner(t *testing.T, cfg *config.Threshold, out *bytes.Buffer) *ThresholdRunner {
	t.Helper()

	if cfg.Decoder == "" {
		cfg.Decoder = imageio.DecoderStdlib
	}
	if cfg.Display == "" {
		cfg.Display = "none"
	}

	r, err := NewThresholdRunner(cfg, logger.Nop(), out)
	if err != nil {
		t.Fatalf("NewThresholdRunner: %v", err)
	}
	return r
}

func TestThresholdRunner(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "binary.png")

	var out bytes.Buffer
	r := newRunner(t, &config.Threshold{
		ImagePath:  gradientPNG(t, dir),
		Target:     10,
		OutputPath: outPath,
	}, &out)

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Threshold != 246 || res.SelectedCount != 10 || !res.Found {
		t.Errorf("result = %+v, want threshold 246 selecting 10", res)
	}

	for _, stage := range []string{"load", "histogram", "binarize"} {
		if n := len(r.timing.Timings(stage)); n != 1 {
			t.Errorf("%s recorded %d timings, want 1", stage, n)
		}
	}

	report := out.String()
	for _, want := range []string{
		"Image loaded: 16x16 pixels",
		"Target pixels: 10",
		"Threshold: 246\n",
		"Selected pixels: 10",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	loader, err := imageio.NewLoader(imageio.DecoderStdlib, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	binary, err := loader.Load(outPath)
	if err != nil {
		t.Fatalf("load binarized output: %v", err)
	}
	h := histogram.FromGray(binary.Gray)
	if h[threshold.Foreground] != 10 || h[threshold.Background] != 246 {
		t.Errorf("binarized output has %d white and %d black pixels", h[threshold.Foreground], h[threshold.Background])
	}
}

func TestThresholdRunnerInsufficientPixels(t *testing.T) {
	dir := t.TempDir()
	path := gradientPNG(t, dir)

	var out bytes.Buffer
	res, err := newRunner(t, &config.Threshold{ImagePath: path, Target: 1000}, &out).Run(context.Background())
	if err != nil {
		t.Fatalf("lenient Run: %v", err)
	}
	if res.Found || res.Threshold != 0 || res.SelectedCount != 256 {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(out.String(), "target not reached") {
		t.Errorf("report does not flag the shortfall:\n%s", out.String())
	}

	out.Reset()
	_, err = newRunner(t, &config.Threshold{ImagePath: path, Target: 1000, Strict: true}, &out).Run(context.Background())
	if !errors.Is(err, threshold.ErrInsufficientPixels) {
		t.Fatalf("strict err = %v, want ErrInsufficientPixels", err)
	}
	if ExitCode(err) != ExitError {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitError)
	}
}

func TestThresholdRunnerMissingImage(t *testing.T) {
	var out bytes.Buffer
	r := newRunner(t, &config.Threshold{ImagePath: filepath.Join(t.TempDir(), "test.jpg")}, &out)

	_, err := r.Run(context.Background())
	if !errors.Is(err, imageio.ErrMissingInput) {
		t.Fatalf("err = %v, want ErrMissingInput", err)
	}
	if ExitCode(err) != ExitError {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitError)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected report output: %q", out.String())
	}
}

func TestThresholdRunnerDecodeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.jpg")
	if err := os.WriteFile(path, []byte{0xff, 0xd8, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	_, err := newRunner(t, &config.Threshold{ImagePath: path}, &out).Run(context.Background())
	if !errors.Is(err, imageio.ErrDecodeFailure) {
		t.Fatalf("err = %v, want ErrDecodeFailure", err)
	}
}

func TestNewThresholdRunnerUnknownBackend(t *testing.T) {
	_, err := NewThresholdRunner(&config.Threshold{Decoder: "magick", Display: "none"}, logger.Nop(), &bytes.Buffer{})
	if ExitCode(err) != ExitUsage {
		t.Errorf("ExitCode(%v) = %d, want %d", err, ExitCode(err), ExitUsage)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{fmt.Errorf("%w: %w", config.ErrUsage, flag.ErrHelp), ExitOK},
		{fmt.Errorf("%w: bad flag", config.ErrUsage), ExitUsage},
		{imageio.ErrMissingInput, ExitError},
		{errors.New("anything"), ExitError},
	}

	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	res := threshold.Result{Threshold: 200, SelectedCount: 1000, Target: 500, Found: true}
	stats := histogram.Stats{Total: 1000, Mean: 200}

	if err := WriteReport(&buf, 40, 25, stats, res); err != nil {
		t.Fatal(err)
	}

	want := "Image loaded: 40x25 pixels\n" +
		"Mean intensity: 200.00 StdDev: 0.00\n" +
		"------------------------------\n" +
		"Target pixels: 500\n" +
		"Threshold: 200\n" +
		"Selected pixels: 1000\n" +
		"------------------------------\n"
	if buf.String() != want {
		t.Errorf("report =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestHeaderRunner(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "SimpleSqueeze_quant.tflite")
	if err := os.WriteFile(model, []byte{0x1c, 0x00, 0x00, 0x00, 0x54, 0x46, 0x4c, 0x33}, 0o644); err != nil {
		t.Fatal(err)
	}
	headerPath := filepath.Join(dir, "model.h")

	var out bytes.Buffer
	r := NewHeaderRunner(&config.Header{
		Pattern:    filepath.Join(dir, "*.tflite"),
		OutputPath: headerPath,
		VarName:    "mnist_model",
		Columns:    12,
	}, logger.Nop(), &out)

	picked, err := r.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if picked != model {
		t.Errorf("picked %s, want %s", picked, model)
	}

	header, err := os.ReadFile(headerPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"#ifndef MNIST_MODEL_H",
		"unsigned char mnist_model[] = {\n0x1c, 0x00, 0x00, 0x00, 0x54, 0x46, 0x4c, 0x33, };",
		"unsigned int mnist_model_len = 8;",
		"#endif\n",
	} {
		if !strings.Contains(string(header), want) {
			t.Errorf("header missing %q:\n%s", want, header)
		}
	}
	if !strings.Contains(out.String(), "Found model: "+model) {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestHeaderRunnerNoModel(t *testing.T) {
	dir := t.TempDir()
	r := NewHeaderRunner(&config.Header{
		Pattern:    filepath.Join(dir, "*.tflite"),
		OutputPath: filepath.Join(dir, "model.h"),
		VarName:    "mnist_model",
		Columns:    12,
	}, logger.Nop(), &bytes.Buffer{})

	_, err := r.Run()
	if err == nil {
		t.Fatal("expected error")
	}
	if ExitCode(err) != ExitError {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitError)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "model.h")); !os.IsNotExist(statErr) {
		t.Error("header written despite missing model")
	}
}
