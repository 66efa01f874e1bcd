package histogram

import (
	"fmt"

	"gocv.io/x/gocv"
)

// FromMat builds the histogram of a single channel 8-bit Mat with
// OpenCV's calcHist.
func FromMat(src gocv.Mat) (Histogram, error) {
	var h Histogram

	if src.Empty() {
		return h, fmt.Errorf("histogram: empty Mat")
	}
	if src.Channels() != 1 || src.Type() != gocv.MatTypeCV8UC1 {
		return h, fmt.Errorf("histogram: expected 8-bit single channel Mat, got %d channels", src.Channels())
	}

	hist := gocv.NewMat()
	defer hist.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	channels := []int{0}
	histSize := []int{Levels}
	ranges := []float64{0, Levels}

	if err := gocv.CalcHist([]gocv.Mat{src}, channels, mask, &hist, histSize, ranges, false); err != nil {
		return h, fmt.Errorf("histogram: calcHist failed: %w", err)
	}

	for i := 0; i < Levels; i++ {
		h[i] = int(hist.GetFloatAt(i, 0))
	}

	return h, nil
}
