package skin

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"testing"

	"github.com/openpad/padview/internal/draw"
)

func solidSprite(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stddraw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, stddraw.Src)
	return img
}

var spriteColor = color.RGBA{R: 10, G: 200, B: 30, A: 255}

func TestRunDrawImageByPos(t *testing.T) {
	canvas := draw.NewCanvas(0, 0, 64, 64)
	sprites := []image.Image{solidSprite(8, 8, spriteColor)}

	// dst = coord + sign*pos*area = (4 + 1*0.5*40, 36 - 1*0.5*40) = (24, 16)
	list := []Instruction{DrawImageByPos{
		Src: 0, Width: 8, Height: 8,
		Coord: CoordTemplate{X: 4, Y: 36, SignX: 1, SignY: -1},
		AreaW: 40, AreaH: 40,
	}}
	Run(canvas, sprites, list, 0, 1, draw.PointF{X: 0.5, Y: 0.5})

	if got := canvas.RGBA().RGBAAt(27, 19); got != spriteColor {
		t.Errorf("pixel inside positioned sprite = %v, want %v", got, spriteColor)
	}
	if got := canvas.RGBA().RGBAAt(4, 36); got.A != 0 {
		t.Errorf("pixel at unshifted coord = %v, want untouched", got)
	}
}

func TestRunClearThenDrawSequence(t *testing.T) {
	canvas := draw.NewCanvas(0, 0, 32, 32)
	sprites := []image.Image{solidSprite(32, 32, spriteColor)}

	Run(canvas, sprites, []Instruction{
		DrawImage{Src: 0, Width: 32, Height: 32},
		ClearRect{X: 8, Y: 8, Width: 16, Height: 16},
	}, 0, 1, draw.PointF{})

	if got := canvas.RGBA().RGBAAt(16, 16); got.A != 0 {
		t.Errorf("cleared center = %v, want transparent", got)
	}
	if got := canvas.RGBA().RGBAAt(2, 2); got != spriteColor {
		t.Errorf("border = %v, want %v", got, spriteColor)
	}
}

func TestRunValueScaledPolygon(t *testing.T) {
	canvas := draw.NewCanvas(0, 0, 64, 32)
	sprites := []image.Image{solidSprite(64, 32, spriteColor)}

	// Scaled vertices slide right by value*areaWidth; at value 0.5 and area 40
	// the clip covers x in [20, 40].
	list := []Instruction{DrawImageInPolygonByValue{
		Src: 0, AreaWidth: 40,
		Path: []PathPoint{
			{X: 0, Y: 0, Scale: 1},
			{X: 20, Y: 0, Scale: 1},
			{X: 20, Y: 32, Scale: 1},
			{X: 0, Y: 32, Scale: 1},
		},
		Width: 64, Height: 32,
	}}
	Run(canvas, sprites, list, 0.5, 1, draw.PointF{})

	if got := canvas.RGBA().RGBAAt(30, 16); got != spriteColor {
		t.Errorf("pixel inside shifted clip = %v, want %v", got, spriteColor)
	}
	if got := canvas.RGBA().RGBAAt(10, 16); got.A != 0 {
		t.Errorf("pixel left of shifted clip = %v, want transparent", got)
	}
	if got := canvas.RGBA().RGBAAt(50, 16); got.A != 0 {
		t.Errorf("pixel right of shifted clip = %v, want transparent", got)
	}
}

func TestRunClearParallelogramByValue(t *testing.T) {
	canvas := draw.NewCanvas(0, 0, 40, 20)
	sprites := []image.Image{solidSprite(40, 20, spriteColor)}

	Run(canvas, sprites, []Instruction{DrawImage{Src: 0, Width: 40, Height: 20}}, 0, 1, draw.PointF{})
	// At value 0.5 the leading edge starts at x = 20; the right half clears.
	Run(canvas, sprites, []Instruction{
		ClearParallelogramByValue{X: 0, Y: 0, Width: 40, Height: 20},
	}, 0.5, 1, draw.PointF{})

	if got := canvas.RGBA().RGBAAt(30, 10); got.A != 0 {
		t.Errorf("inside cleared half = %v, want transparent", got)
	}
	if got := canvas.RGBA().RGBAAt(10, 10); got != spriteColor {
		t.Errorf("outside cleared half = %v, want %v", got, spriteColor)
	}
}

func TestRunFadeoutAlphaZeroIsNoop(t *testing.T) {
	canvas := draw.NewCanvas(0, 0, 16, 16)
	sprites := []image.Image{solidSprite(16, 16, spriteColor)}

	Run(canvas, sprites, []Instruction{DrawImage{Src: 0, Width: 16, Height: 16}}, 0, 1, draw.PointF{})
	Run(canvas, sprites, []Instruction{FadeoutRect{Width: 16, Height: 16}}, 0, 0, draw.PointF{})

	if got := canvas.RGBA().RGBAAt(8, 8); got != spriteColor {
		t.Errorf("alpha-zero fadeout modified pixel to %v", got)
	}
}

func TestRunEmptyList(t *testing.T) {
	canvas := draw.NewCanvas(0, 0, 8, 8)
	Run(canvas, nil, nil, 0, 1, draw.PointF{})
	for i, v := range canvas.RGBA().Pix {
		if v != 0 {
			t.Fatalf("empty list touched byte %d", i)
		}
	}
}
