package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/openpad/padview/internal/diag"
)

// PNGPresenter writes every Nth composed frame to a numbered PNG file.
// Used by the simulator so rendering can be inspected without a framebuffer.
type PNGPresenter struct {
	Dir   string
	Every int
	Sink  diag.Sink

	frame   int
	written int
	running atomic.Bool
}

func NewPNGPresenter(dir string, every int, sink diag.Sink) *PNGPresenter {
	if every < 1 {
		every = 1
	}
	if sink == nil {
		sink = diag.NoopSink{}
	}
	return &PNGPresenter{Dir: dir, Every: every, Sink: sink}
}

func (p *PNGPresenter) Start(ctx context.Context) error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return err
	}
	p.Sink.Logf("png", "writing frames to %s (every %d)", p.Dir, p.Every)
	p.running.Store(true)
	return nil
}

func (p *PNGPresenter) Stop() error {
	p.running.Store(false)
	return nil
}

// Written reports how many files have been produced so far.
func (p *PNGPresenter) Written() int { return p.written }

func (p *PNGPresenter) Present(frame *image.RGBA) error {
	if !p.running.Load() {
		return nil
	}
	n := p.frame
	p.frame++
	if n%p.Every != 0 {
		return nil
	}
	path := filepath.Join(p.Dir, fmt.Sprintf("frame-%05d.png", n))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return err
	}
	p.written++
	return f.Close()
}
