package threshold

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const (
	Background uint8 = 0
	Foreground uint8 = 255
)

// Binarize maps every pixel >= cutoff to Foreground and the rest to
// Background. The returned image has the bounds of src.
func Binarize(src *image.Gray, cutoff int) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)

	width := bounds.Dx()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		srcRow := src.Pix[src.PixOffset(bounds.Min.X, y):][:width]
		dstRow := dst.Pix[dst.PixOffset(bounds.Min.X, y):][:width]
		for x, v := range srcRow {
			if int(v) >= cutoff {
				dstRow[x] = Foreground
			} else {
				dstRow[x] = Background
			}
		}
	}

	return dst
}

// BinarizeMat is the OpenCV counterpart of Binarize. ThresholdBinary keeps
// values strictly above the threshold, so the cutoff is shifted down by half
// a level to include pixels equal to it.
func BinarizeMat(src gocv.Mat, cutoff int) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("binarize: empty Mat")
	}
	if src.Channels() != 1 {
		return gocv.NewMat(), fmt.Errorf("binarize: expected single channel Mat, got %d channels", src.Channels())
	}

	dst := gocv.NewMat()
	gocv.Threshold(src, &dst, float32(cutoff)-0.5, float32(Foreground), gocv.ThresholdBinary)

	return dst, nil
}
