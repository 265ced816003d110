package render

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"sort"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/openpad/padview/internal/render/layout"
	"github.com/openpad/padview/internal/slot"
)

// Compositor assembles the ready slots' layer surfaces onto one logical
// canvas, scaling each slot's skin into its viewport.
type Compositor struct {
	canvas   *image.RGBA
	fontFace font.Face
}

// NewCompositor builds the logical canvas. fontPath may be empty; the
// basicfont fallback then renders status text, as on a device without a
// font file installed.
func NewCompositor(fontPath string) (*Compositor, error) {
	c := &Compositor{
		canvas:   image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight)),
		fontFace: basicfont.Face7x13,
	}
	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		tt, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		c.fontFace = truetype.NewFace(tt, &truetype.Options{Size: 28, DPI: 96, Hinting: font.HintingFull})
	}
	return c, nil
}

// Compose redraws the canvas from the given slots and returns it. With no
// ready slots it shows a waiting message instead.
func (c *Compositor) Compose(slots map[int]*slot.Slot) *image.RGBA {
	draw.Draw(c.canvas, c.canvas.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	if len(slots) == 0 {
		c.drawTextCentered("waiting for input")
		return c.canvas
	}

	indices := make([]int, 0, len(slots))
	for idx := range slots {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	viewports := layout.Viewports(c.canvas.Bounds(), len(indices))
	for i, idx := range indices {
		c.composeSlot(slots[idx], viewports[i])
	}
	return c.canvas
}

// composeSlot scales every layer of one slot into its viewport, preserving
// the skin's aspect ratio and layer order.
func (c *Compositor) composeSlot(s *slot.Slot, viewport image.Rectangle) {
	extent := skinExtent(s)
	if extent.Empty() || viewport.Empty() {
		return
	}
	scaleX := float64(viewport.Dx()) / float64(extent.Dx())
	scaleY := float64(viewport.Dy()) / float64(extent.Dy())
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	scaledW := int(float64(extent.Dx()) * scale)
	scaledH := int(float64(extent.Dy()) * scale)
	originX := viewport.Min.X + (viewport.Dx()-scaledW)/2
	originY := viewport.Min.Y + (viewport.Dy()-scaledH)/2

	for _, layer := range s.Layers {
		lb := layer.Bounds()
		if lb.Empty() {
			continue
		}
		pos := layer.Pos()
		dst := image.Rect(
			originX+int(float64(pos.X-extent.Min.X)*scale),
			originY+int(float64(pos.Y-extent.Min.Y)*scale),
			originX+int(float64(pos.X-extent.Min.X+lb.Dx())*scale),
			originY+int(float64(pos.Y-extent.Min.Y+lb.Dy())*scale),
		)
		xdraw.NearestNeighbor.Scale(c.canvas, dst, layer.RGBA(), lb, xdraw.Over, nil)
	}
}

func skinExtent(s *slot.Slot) image.Rectangle {
	var extent image.Rectangle
	for _, layer := range s.Layers {
		pos := layer.Pos()
		r := layer.Bounds().Add(pos)
		extent = extent.Union(r)
	}
	return extent
}

func (c *Compositor) drawTextCentered(text string) {
	drawer := &font.Drawer{
		Dst:  c.canvas,
		Src:  &image.Uniform{C: Foreground},
		Face: c.fontFace,
	}
	textWidth := drawer.MeasureString(text).Ceil()
	metrics := c.fontFace.Metrics()
	x := (CanvasWidth - textWidth) / 2
	y := CanvasHeight/2 + metrics.Ascent.Ceil()/2
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(text)
}
