// Package histogram accumulates 8-bit grayscale intensity histograms.
package histogram

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// Levels is the number of intensity buckets of an 8-bit grayscale image.
const Levels = 256

// Histogram holds the pixel count for every intensity level. Index is the
// intensity, value is the number of pixels with that intensity.
type Histogram [Levels]int

// Stats summarizes the intensity distribution of a histogram.
type Stats struct {
	Total  int
	Mean   float64
	StdDev float64
	Min    int
	Max    int
}

// FromGray counts every pixel inside the image bounds.
func FromGray(img *image.Gray) Histogram {
	var h Histogram
	if img == nil {
		return h
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		offset := img.PixOffset(bounds.Min.X, y)
		for _, v := range img.Pix[offset : offset+width] {
			h[v]++
		}
	}

	return h
}

// FromBytes treats every byte as one pixel intensity.
func FromBytes(pixels []byte) Histogram {
	var h Histogram
	for _, v := range pixels {
		h[v]++
	}
	return h
}

func (h *Histogram) Add(intensity uint8) {
	h[intensity]++
}

// Total returns the pixel count of the source image.
func (h *Histogram) Total() int {
	total := 0
	for _, count := range h {
		total += count
	}
	return total
}

// TopSum returns the number of pixels with intensity >= from. Values
// outside [0,255] are clamped.
func (h *Histogram) TopSum(from int) int {
	if from < 0 {
		from = 0
	}
	sum := 0
	for i := Levels - 1; i >= from; i-- {
		sum += h[i]
	}
	return sum
}

// Stats computes the weighted mean and sample standard deviation of the
// intensities along with the darkest and brightest populated level.
func (h *Histogram) Stats() Stats {
	levels := make([]float64, Levels)
	weights := make([]float64, Levels)

	s := Stats{Min: -1, Max: -1}
	for i, count := range h {
		levels[i] = float64(i)
		weights[i] = float64(count)
		if count == 0 {
			continue
		}
		s.Total += count
		if s.Min < 0 {
			s.Min = i
		}
		s.Max = i
	}

	if s.Total == 0 {
		return Stats{}
	}

	s.Mean = stat.Mean(levels, weights)
	if s.Total > 1 {
		s.StdDev = stat.StdDev(levels, weights)
	}

	return s
}
