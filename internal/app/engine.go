package app

import (
	"fmt"
	"image"

	"brightcut/internal/histogram"
	"brightcut/internal/imageio"
	"brightcut/internal/threshold"
)

// engine computes the histogram and applies the cutoff. The OpenCV engine
// mirrors calcHist/threshold; the Go engine needs no native code.
type engine interface {
	Histogram(img *image.Gray) (histogram.Histogram, error)
	Binarize(img *image.Gray, cutoff int) (*image.Gray, error)
}

func newEngine(decoder string) engine {
	if decoder == imageio.DecoderOpenCV {
		return opencvEngine{}
	}
	return goEngine{}
}

type goEngine struct{}

func (goEngine) Histogram(img *image.Gray) (histogram.Histogram, error) {
	return histogram.FromGray(img), nil
}

func (goEngine) Binarize(img *image.Gray, cutoff int) (*image.Gray, error) {
	return threshold.Binarize(img, cutoff), nil
}

type opencvEngine struct{}

func (opencvEngine) Histogram(img *image.Gray) (histogram.Histogram, error) {
	mat, err := imageio.GrayToMat(img)
	if err != nil {
		return histogram.Histogram{}, err
	}
	defer mat.Close()

	return histogram.FromMat(mat)
}

func (opencvEngine) Binarize(img *image.Gray, cutoff int) (*image.Gray, error) {
	mat, err := imageio.GrayToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	binary, err := threshold.BinarizeMat(mat, cutoff)
	defer binary.Close()
	if err != nil {
		return nil, err
	}

	out, err := imageio.MatToGray(binary)
	if err != nil {
		return nil, fmt.Errorf("binarized Mat conversion failed: %w", err)
	}
	return out, nil
}
