package draw

import (
	"image"
	"image/draw"
)

// PointF is a point in canvas-local pixel coordinates.
type PointF struct {
	X float64
	Y float64
}

// Canvas is one skin layer: an offscreen premultiplied-RGBA surface plus its
// placement inside the composed slot viewport. All primitives operate in
// canvas-local coordinates.
type Canvas struct {
	rgba *image.RGBA
	pos  image.Point
}

func NewCanvas(x, y, width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		rgba: image.NewRGBA(image.Rect(0, 0, width, height)),
		pos:  image.Pt(x, y),
	}
}

// RGBA exposes the backing surface for composition.
func (c *Canvas) RGBA() *image.RGBA { return c.rgba }

// Pos is the canvas placement within the slot viewport.
func (c *Canvas) Pos() image.Point { return c.pos }

func (c *Canvas) Bounds() image.Rectangle { return c.rgba.Bounds() }

// Reset erases the whole surface to fully transparent.
func (c *Canvas) Reset() {
	draw.Draw(c.rgba, c.rgba.Bounds(), image.Transparent, image.Point{}, draw.Src)
}
