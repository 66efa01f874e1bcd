// Package display shows the original and binarized images side by side.
package display

import (
	"context"
	"fmt"
	"image"

	"brightcut/internal/logger"
)

const (
	BackendOpenCV = "opencv"
	BackendFyne   = "fyne"
	BackendNone   = "none"
)

// Frame is one titled image to show.
type Frame struct {
	Title string
	Image *image.Gray
}

// Viewer blocks until the user dismisses the frames or ctx is cancelled.
type Viewer interface {
	Show(ctx context.Context, frames ...Frame) error
}

func New(backend string, log logger.Logger) (Viewer, error) {
	switch backend {
	case BackendOpenCV:
		return &opencvViewer{logger: log}, nil
	case BackendFyne:
		return &fyneViewer{logger: log}, nil
	case BackendNone, "":
		return noneViewer{}, nil
	default:
		return nil, fmt.Errorf("unknown display backend: %s", backend)
	}
}

type noneViewer struct{}

func (noneViewer) Show(context.Context, ...Frame) error {
	return nil
}
