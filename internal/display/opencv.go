package display

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"brightcut/internal/imageio"
	"brightcut/internal/logger"
)

// keyPollMillis bounds how long a single WaitKey call blocks so that
// cancellation is noticed.
const keyPollMillis = 100

type opencvViewer struct {
	logger logger.Logger
}

func (v *opencvViewer) Show(ctx context.Context, frames ...Frame) error {
	windows := make([]*gocv.Window, 0, len(frames))
	mats := make([]gocv.Mat, 0, len(frames))
	defer func() {
		for _, w := range windows {
			w.Close()
		}
		for _, m := range mats {
			m.Close()
		}
	}()

	for _, f := range frames {
		mat, err := imageio.GrayToMat(f.Image)
		if err != nil {
			return fmt.Errorf("display %q: %w", f.Title, err)
		}
		mats = append(mats, mat)

		w := gocv.NewWindow(f.Title)
		windows = append(windows, w)
		w.IMShow(mat)
	}

	if len(windows) == 0 {
		return nil
	}

	v.logger.Info("OpenCVViewer", "press any key in an image window to close", map[string]interface{}{
		"windows": len(windows),
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if key := windows[0].WaitKey(keyPollMillis); key >= 0 {
			return nil
		}
	}
}
