package skin

import (
	"image"

	"github.com/openpad/padview/internal/draw"
)

// Instruction is one primitive drawing operation from a skin's instruction
// lists. The set is closed: the config declares, the interpreter executes.
type Instruction interface {
	isInstruction()
}

// PathPoint is one polygon vertex. Scale is a per-vertex sign flag: when
// non-zero, the resolved X becomes X + Scale*value*areaWidth, so a single
// path template can track an analog value (trigger depth, meter fill).
type PathPoint struct {
	X     float64
	Y     float64
	Scale float64
}

// CoordTemplate computes a destination point from a normalized position:
// (X + SignX*pos.X*areaW, Y + SignY*pos.Y*areaH).
type CoordTemplate struct {
	X     float64
	Y     float64
	SignX float64
	SignY float64
}

type ClearRect struct {
	X, Y, Width, Height float64
}

type ClearPolygon struct {
	Path []PathPoint
}

type DrawImage struct {
	Src           int
	SrcX, SrcY    float64
	Width, Height float64
	DstX, DstY    float64
}

type DrawImageByPos struct {
	Src           int
	SrcX, SrcY    float64
	Width, Height float64
	Coord         CoordTemplate
	AreaW, AreaH  float64
}

type DrawImageInPolygon struct {
	Src           int
	Path          []PathPoint
	SrcX, SrcY    float64
	Width, Height float64
	DstX, DstY    float64
}

type DrawImageInPolygonByValue struct {
	Src           int
	Path          []PathPoint
	AreaWidth     float64
	SrcX, SrcY    float64
	Width, Height float64
	DstX, DstY    float64
}

type ClearParallelogram struct {
	X, Y, Width, Height float64
	Skew                float64
	SkewAway            bool
	Vertical            bool
}

type ClearParallelogramByValue struct {
	X, Y, Width, Height float64
	Skew                float64
	SkewAway            bool
	Vertical            bool
}

type FadeoutRect struct {
	X, Y, Width, Height float64
}

type FadeoutPolygon struct {
	Path []PathPoint
}

func (ClearRect) isInstruction()                 {}
func (ClearPolygon) isInstruction()              {}
func (DrawImage) isInstruction()                 {}
func (DrawImageByPos) isInstruction()            {}
func (DrawImageInPolygon) isInstruction()        {}
func (DrawImageInPolygonByValue) isInstruction() {}
func (ClearParallelogram) isInstruction()        {}
func (ClearParallelogramByValue) isInstruction() {}
func (FadeoutRect) isInstruction()               {}
func (FadeoutPolygon) isInstruction()            {}

// Run interprets an instruction list against one layer surface.
// value drives value-scaled instructions (trigger depth, button strength),
// alpha is the opacity override (1 = none), pos the normalized stick
// position. A nil list is skipped by callers before Run is reached; a
// malformed sprite index is a configuration bug and fails loudly here.
func Run(canvas *draw.Canvas, sprites []image.Image, list []Instruction, value, alpha float64, pos draw.PointF) {
	for _, ins := range list {
		switch ins := ins.(type) {
		case ClearRect:
			draw.ClearRect(canvas, ins.X, ins.Y, ins.Width, ins.Height)
		case ClearPolygon:
			draw.ClearPolygon(canvas, resolvePath(ins.Path, 0, 0))
		case DrawImage:
			draw.DrawImage(canvas, sprites[ins.Src], ins.SrcX, ins.SrcY, ins.Width, ins.Height, ins.DstX, ins.DstY, alpha)
		case DrawImageByPos:
			dstX := ins.Coord.X + ins.Coord.SignX*pos.X*ins.AreaW
			dstY := ins.Coord.Y + ins.Coord.SignY*pos.Y*ins.AreaH
			draw.DrawImage(canvas, sprites[ins.Src], ins.SrcX, ins.SrcY, ins.Width, ins.Height, dstX, dstY, alpha)
		case DrawImageInPolygon:
			draw.DrawImageInPolygon(canvas, sprites[ins.Src], resolvePath(ins.Path, 0, 0), ins.SrcX, ins.SrcY, ins.Width, ins.Height, ins.DstX, ins.DstY, alpha)
		case DrawImageInPolygonByValue:
			draw.DrawImageInPolygon(canvas, sprites[ins.Src], resolvePath(ins.Path, value, ins.AreaWidth), ins.SrcX, ins.SrcY, ins.Width, ins.Height, ins.DstX, ins.DstY, alpha)
		case ClearParallelogram:
			draw.ClearPolygon(canvas, parallelogram(ins.X, ins.Y, ins.Width, ins.Height, 0, ins.Skew, ins.SkewAway, ins.Vertical))
		case ClearParallelogramByValue:
			off := value * ins.Width
			if ins.Vertical {
				off = value * ins.Height
			}
			draw.ClearPolygon(canvas, parallelogram(ins.X, ins.Y, ins.Width, ins.Height, off, ins.Skew, ins.SkewAway, ins.Vertical))
		case FadeoutRect:
			draw.FadeoutRect(canvas, ins.X, ins.Y, ins.Width, ins.Height, alpha)
		case FadeoutPolygon:
			draw.FadeoutPolygon(canvas, resolvePath(ins.Path, 0, 0), alpha)
		}
	}
}

func resolvePath(path []PathPoint, value, areaWidth float64) []draw.PointF {
	out := make([]draw.PointF, len(path))
	for i, p := range path {
		out[i] = draw.PointF{X: p.X + p.Scale*value*areaWidth, Y: p.Y}
	}
	return out
}

// parallelogram builds a skewed quad anchored off pixels into the region
// along its main axis. The trailing edge is displaced by skew so meters can
// match slanted artwork; skewAway flips the displacement.
func parallelogram(x, y, width, height, off, skew float64, skewAway, vertical bool) []draw.PointF {
	s := skew
	if skewAway {
		s = -s
	}
	if vertical {
		y0 := y + off
		return []draw.PointF{
			{X: x, Y: y0},
			{X: x + width, Y: y0 + s},
			{X: x + width, Y: y + height + s},
			{X: x, Y: y + height},
		}
	}
	x0 := x + off
	return []draw.PointF{
		{X: x0, Y: y},
		{X: x + width, Y: y},
		{X: x + width + s, Y: y + height},
		{X: x0 + s, Y: y + height},
	}
}
