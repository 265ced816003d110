package draw

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// ClearRect erases a rectangular region (destination-out, not paint).
func ClearRect(c *Canvas, x, y, width, height float64) {
	r := roundRect(x, y, width, height).Intersect(c.rgba.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.rgba, r, image.Transparent, image.Point{}, draw.Src)
}

// ClearPolygon erases an arbitrary polygonal region.
func ClearPolygon(c *Canvas, path []PointF) {
	mask := rasterizePath(path, c.rgba.Bounds())
	if mask == nil {
		return
	}
	eraseMask(c.rgba, mask, 1)
}

// DrawImage paints a sprite sub-region at fixed coordinates.
// A zero alpha is a no-op; any alpha other than 1 is applied as a temporary
// opacity override for this call only.
func DrawImage(c *Canvas, src image.Image, srcX, srcY, width, height, dstX, dstY, alpha float64) {
	if src == nil || alpha == 0 {
		return
	}
	dstRect := roundRect(dstX, dstY, width, height)
	srcPt := src.Bounds().Min.Add(image.Pt(int(math.Round(srcX)), int(math.Round(srcY))))
	if alpha == 1 {
		draw.Draw(c.rgba, dstRect, src, srcPt, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(clamp01(alpha) * 255))})
	draw.DrawMask(c.rgba, dstRect, src, srcPt, mask, image.Point{}, draw.Over)
}

// DrawImageInPolygon paints a sprite sub-region clipped to a polygon path.
func DrawImageInPolygon(c *Canvas, src image.Image, path []PointF, srcX, srcY, width, height, dstX, dstY, alpha float64) {
	if src == nil || alpha == 0 {
		return
	}
	mask := rasterizePath(path, c.rgba.Bounds())
	if mask == nil {
		return
	}
	if a := clamp01(alpha); a != 1 {
		scaleAlphaMask(mask, a)
	}
	dstRect := roundRect(dstX, dstY, width, height)
	srcPt := src.Bounds().Min.Add(image.Pt(int(math.Round(srcX)), int(math.Round(srcY))))
	draw.DrawMask(c.rgba, dstRect, src, srcPt, mask, dstRect.Min, draw.Over)
}

// FadeoutRect dissolves a rectangular region by alpha in erase compositing.
// It assumes the caller has bracketed a batch of fade-out calls; it performs
// no per-call compositing-state bookkeeping of its own.
func FadeoutRect(c *Canvas, x, y, width, height, alpha float64) {
	alpha = clamp01(alpha)
	if alpha == 0 {
		return
	}
	r := roundRect(x, y, width, height).Intersect(c.rgba.Bounds())
	if r.Empty() {
		return
	}
	keep := 1 - alpha
	pix := c.rgba.Pix
	stride := c.rgba.Stride
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := pix[y*stride+r.Min.X*4 : y*stride+r.Max.X*4]
		for i := range row {
			row[i] = uint8(float64(row[i]) * keep)
		}
	}
}

// FadeoutPolygon dissolves a polygonal region by alpha in erase compositing.
// Same bracketing contract as FadeoutRect.
func FadeoutPolygon(c *Canvas, path []PointF, alpha float64) {
	alpha = clamp01(alpha)
	if alpha == 0 {
		return
	}
	mask := rasterizePath(path, c.rgba.Bounds())
	if mask == nil {
		return
	}
	eraseMask(c.rgba, mask, alpha)
}

// eraseMask multiplies every covered pixel by 1-alpha*coverage.
// The surface is premultiplied, so all four channels scale together.
func eraseMask(dst *image.RGBA, mask *image.Alpha, alpha float64) {
	bounds := dst.Bounds().Intersect(mask.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			coverage := mask.AlphaAt(x, y).A
			if coverage == 0 {
				continue
			}
			keep := 1 - alpha*float64(coverage)/255
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = uint8(float64(dst.Pix[i+0]) * keep)
			dst.Pix[i+1] = uint8(float64(dst.Pix[i+1]) * keep)
			dst.Pix[i+2] = uint8(float64(dst.Pix[i+2]) * keep)
			dst.Pix[i+3] = uint8(float64(dst.Pix[i+3]) * keep)
		}
	}
}

func scaleAlphaMask(mask *image.Alpha, alpha float64) {
	for i, v := range mask.Pix {
		mask.Pix[i] = uint8(float64(v) * alpha)
	}
}

func roundRect(x, y, width, height float64) image.Rectangle {
	return image.Rect(
		int(math.Round(x)),
		int(math.Round(y)),
		int(math.Round(x+width)),
		int(math.Round(y+height)),
	)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
