package app

import (
	"fmt"
	"io"
	"strings"

	"brightcut/internal/histogram"
	"brightcut/internal/threshold"
)

var separator = strings.Repeat("-", 30)

// WriteReport prints the plain text summary of one threshold search.
func WriteReport(w io.Writer, width, height int, stats histogram.Stats, res threshold.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Image loaded: %dx%d pixels\n", width, height)
	fmt.Fprintf(&b, "Mean intensity: %.2f StdDev: %.2f\n", stats.Mean, stats.StdDev)
	fmt.Fprintln(&b, separator)
	fmt.Fprintf(&b, "Target pixels: %d\n", res.Target)
	if res.Found {
		fmt.Fprintf(&b, "Threshold: %d\n", res.Threshold)
	} else {
		fmt.Fprintf(&b, "Threshold: %d (target not reached)\n", res.Threshold)
	}
	fmt.Fprintf(&b, "Selected pixels: %d\n", res.SelectedCount)
	fmt.Fprintln(&b, separator)

	_, err := io.WriteString(w, b.String())
	return err
}
