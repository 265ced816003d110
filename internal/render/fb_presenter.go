package render

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"

	"github.com/openpad/padview/internal/diag"
)

// FBPresenter blits composed frames to the Linux framebuffer, scaling the
// logical canvas to the device with nearest-neighbor sampling.
type FBPresenter struct {
	Device string
	Sink   diag.Sink

	fbDev   *fb.Device
	running atomic.Bool
}

func NewFBPresenter(device string, sink diag.Sink) *FBPresenter {
	if device == "" {
		device = "/dev/fb0"
	}
	if sink == nil {
		sink = diag.NoopSink{}
	}
	return &FBPresenter{Device: device, Sink: sink}
}

func (p *FBPresenter) Start(ctx context.Context) error {
	dev, err := fb.Open(p.Device)
	if err != nil {
		return err
	}
	p.fbDev = dev
	bounds := dev.Bounds()
	p.Sink.Logf("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	p.running.Store(true)
	return nil
}

func (p *FBPresenter) Stop() error {
	p.running.Store(false)
	if p.fbDev != nil {
		p.fbDev.Close()
	}
	return nil
}

func (p *FBPresenter) Present(frame *image.RGBA) error {
	if !p.running.Load() || p.fbDev == nil {
		return nil
	}
	bounds := p.fbDev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	srcWidth := frame.Bounds().Dx()
	srcHeight := frame.Bounds().Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * srcHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * srcWidth) / fbWidth
			pixel := frame.RGBAAt(sx, sy)
			p.fbDev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
	return nil
}
