package imageio

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"brightcut/internal/logger"
)

// opencvLoader decodes with cv::imread in grayscale mode.
type opencvLoader struct {
	logger logger.Logger
}

func (l *opencvLoader) Name() string {
	return DecoderOpenCV
}

func (l *opencvLoader) Load(path string) (*Image, error) {
	if err := checkInput(path); err != nil {
		return nil, err
	}

	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrDecodeFailure, path)
	}

	gray, err := MatToGray(mat)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailure, path, err)
	}

	l.logger.Debug("OpenCVLoader", "image decoded", map[string]interface{}{
		"path":     path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	})

	return &Image{
		Gray:   gray,
		Width:  mat.Cols(),
		Height: mat.Rows(),
		Format: formatFromExtension(path),
		Path:   path,
	}, nil
}

// MatToGray copies a CV_8UC1 Mat into an *image.Gray.
func MatToGray(mat gocv.Mat) (*image.Gray, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("Mat is empty")
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("unsupported Mat type %v, expected CV_8UC1", mat.Type())
	}

	rows, cols := mat.Rows(), mat.Cols()
	data := mat.ToBytes()
	if len(data) != rows*cols {
		return nil, fmt.Errorf("Mat data size %d does not match %dx%d", len(data), cols, rows)
	}

	gray := image.NewGray(image.Rect(0, 0, cols, rows))
	copy(gray.Pix, data)
	return gray, nil
}

// GrayToMat copies an *image.Gray into a new CV_8UC1 Mat. The caller owns
// the returned Mat.
func GrayToMat(img *image.Gray) (gocv.Mat, error) {
	bounds := img.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()
	if rows <= 0 || cols <= 0 {
		return gocv.NewMat(), fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	data := make([]byte, 0, rows*cols)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		offset := img.PixOffset(bounds.Min.X, y)
		data = append(data, img.Pix[offset:offset+cols]...)
	}

	return gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8UC1, data)
}
