package render

import (
	"context"
	"image"
	"image/color"
)

// Presenter pushes a composed frame to an output device.
type Presenter interface {
	Start(ctx context.Context) error
	Stop() error
	Present(frame *image.RGBA) error
}

// NoopPresenter discards frames.
type NoopPresenter struct{}

func (NoopPresenter) Start(ctx context.Context) error { return nil }
func (NoopPresenter) Stop() error                     { return nil }
func (NoopPresenter) Present(frame *image.RGBA) error { return nil }

// Global render configuration for colors and the logical canvas.
var (
	Background = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xFF}
	Foreground = color.RGBA{R: 0xE8, G: 0xE8, B: 0xF0, A: 0xFF}

	// Logical canvas size; presenters scale to their device.
	CanvasWidth  = 1280
	CanvasHeight = 720
)
