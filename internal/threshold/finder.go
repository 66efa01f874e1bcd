// Package threshold finds the intensity cutoff that isolates the brightest
// pixels of a grayscale histogram and applies it.
package threshold

import (
	"errors"
	"fmt"

	"brightcut/internal/histogram"
)

// ErrInsufficientPixels reports that the histogram holds fewer pixels than
// the requested target.
var ErrInsufficientPixels = errors.New("target exceeds total pixel count")

// Result of a threshold search.
//
// When Found is false the whole histogram was consumed without reaching
// Target: Threshold is 0 and SelectedCount is the total pixel count.
type Result struct {
	Threshold     int
	SelectedCount int
	Target        int
	Found         bool
}

// Find walks the histogram from 255 down to 0, accumulating pixel counts,
// and stops at the first intensity where the running sum reaches target.
//
// The bucket is always added before the comparison, so a target of 0
// yields threshold 255 with SelectedCount h[255]. Negative targets are
// treated as 0.
func Find(h histogram.Histogram, target int) Result {
	if target < 0 {
		target = 0
	}

	res := Result{Target: target}
	for i := histogram.Levels - 1; i >= 0; i-- {
		res.SelectedCount += h[i]
		if res.SelectedCount >= target {
			res.Threshold = i
			res.Found = true
			return res
		}
	}

	return res
}

// Err returns ErrInsufficientPixels for a search that never reached its
// target, nil otherwise.
func (r Result) Err() error {
	if r.Found {
		return nil
	}
	return fmt.Errorf("%w: target %d, available %d", ErrInsufficientPixels, r.Target, r.SelectedCount)
}
