package display

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"brightcut/internal/logger"
)

const (
	AppID      = "com.imageprocessing.brightcut"
	AppName    = "brightcut"
	frameWidth = 480
)

type fyneViewer struct {
	logger logger.Logger
}

func (v *fyneViewer) Show(ctx context.Context, frames ...Frame) error {
	if len(frames) == 0 {
		return nil
	}

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)

	panels := make([]fyne.CanvasObject, 0, len(frames))
	for _, f := range frames {
		img := canvas.NewImageFromImage(f.Image)
		img.FillMode = canvas.ImageFillContain
		img.ScaleMode = canvas.ImageScalePixels

		bounds := f.Image.Bounds()
		height := float32(frameWidth)
		if bounds.Dx() > 0 {
			height = float32(frameWidth) * float32(bounds.Dy()) / float32(bounds.Dx())
		}
		img.SetMinSize(fyne.NewSize(frameWidth, height))

		title := widget.NewLabelWithStyle(f.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		panels = append(panels, container.NewBorder(title, nil, nil, nil, img))
	}

	window.SetContent(container.NewGridWithColumns(len(panels), panels...))
	window.SetOnClosed(func() {
		v.logger.Debug("FyneViewer", "window closed", nil)
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(fyneApp.Quit)
		case <-done:
		}
	}()

	v.logger.Info("FyneViewer", "close the window to exit", map[string]interface{}{
		"frames": len(frames),
	})

	window.ShowAndRun()
	return ctx.Err()
}
