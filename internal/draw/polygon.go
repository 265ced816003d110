package draw

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// rasterizePath renders a closed polygon into an alpha coverage mask over
// bounds. Returns nil for degenerate paths.
func rasterizePath(path []PointF, bounds image.Rectangle) *image.Alpha {
	if len(path) < 3 || bounds.Empty() {
		return nil
	}
	rast := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	rast.DrawOp = draw.Src
	rast.MoveTo(float32(path[0].X), float32(path[0].Y))
	for _, p := range path[1:] {
		rast.LineTo(float32(p.X), float32(p.Y))
	}
	rast.ClosePath()
	mask := image.NewAlpha(bounds)
	rast.Draw(mask, bounds, image.Opaque, image.Point{})
	return mask
}
