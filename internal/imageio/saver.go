package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"brightcut/internal/logger"
)

type Saver struct {
	logger logger.Logger
}

func NewSaver(log logger.Logger) *Saver {
	return &Saver{logger: log}
}

// SaveToPath encodes img in the format implied by the file extension,
// defaulting to PNG.
func (s *Saver) SaveToPath(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	format := formatFromExtension(path)
	if err := s.SaveToWriter(file, img, format); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path":   path,
		"format": format,
	})
	return nil
}

func (s *Saver) SaveToWriter(writer io.Writer, img image.Image, format string) error {
	if img == nil {
		return fmt.Errorf("no image data to save")
	}

	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(writer, img, &jpeg.Options{Quality: 95})
	case "bmp":
		err = bmp.Encode(writer, img)
	case "tiff":
		err = tiff.Encode(writer, img, nil)
	case "png", "":
		err = png.Encode(writer, img)
	default:
		s.logger.Warning("ImageSaver", "format not supported, using PNG", map[string]interface{}{
			"requested_format": format,
		})
		err = png.Encode(writer, img)
	}

	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}
