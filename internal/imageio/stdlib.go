package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"brightcut/internal/logger"
)

// stdlibLoader decodes with image.Decode and needs no native libraries.
type stdlibLoader struct {
	logger logger.Logger
}

func (l *stdlibLoader) Name() string {
	return DecoderStdlib
}

func (l *stdlibLoader) Load(path string) (*Image, error) {
	if err := checkInput(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingInput, path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailure, path, err)
	}

	gray := ToGray(img)
	bounds := gray.Bounds()

	l.logger.Debug("StdlibLoader", "image decoded", map[string]interface{}{
		"path":   path,
		"format": format,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	})

	return &Image{
		Gray:   gray,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
		Path:   path,
	}, nil
}

// ToGray converts any image to 8-bit grayscale. *image.Gray input is
// returned as is.
func ToGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}

	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}
