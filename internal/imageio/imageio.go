// Package imageio loads grayscale images from disk and writes binarized
// results back out.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"brightcut/internal/logger"
)

var (
	// ErrMissingInput means the source image could not be located.
	ErrMissingInput = errors.New("input image not found")
	// ErrDecodeFailure means the file exists but is not a decodable image.
	ErrDecodeFailure = errors.New("input image could not be decoded")
)

// Image is a decoded single channel image.
type Image struct {
	Gray   *image.Gray
	Width  int
	Height int
	Format string
	Path   string
}

type Loader interface {
	Load(path string) (*Image, error)
	Name() string
}

const (
	DecoderOpenCV = "opencv"
	DecoderStdlib = "stdlib"
)

// NewLoader returns the loader registered under name.
func NewLoader(name string, log logger.Logger) (Loader, error) {
	switch name {
	case DecoderOpenCV:
		return &opencvLoader{logger: log}, nil
	case DecoderStdlib:
		return &stdlibLoader{logger: log}, nil
	default:
		return nil, fmt.Errorf("unknown decoder: %s", name)
	}
}

// checkInput maps a missing or unreadable path to ErrMissingInput. The
// working directory is reported since relative paths are the common case.
func checkInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		wd, _ := os.Getwd()
		return fmt.Errorf("%w: %s (searched from %s): %v", ErrMissingInput, path, wd, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrMissingInput, path)
	}
	return nil
}

func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		return ""
	}
}
