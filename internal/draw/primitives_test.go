package draw

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"testing"
)

func filledCanvas(w, h int, c color.RGBA) *Canvas {
	canvas := NewCanvas(0, 0, w, h)
	stddraw.Draw(canvas.RGBA(), canvas.Bounds(), image.NewUniform(c), image.Point{}, stddraw.Src)
	return canvas
}

var opaque = color.RGBA{R: 200, G: 100, B: 50, A: 255}

func TestClearRect(t *testing.T) {
	c := filledCanvas(16, 16, opaque)
	ClearRect(c, 4, 4, 8, 8)

	if got := c.RGBA().RGBAAt(8, 8); got.A != 0 {
		t.Errorf("inside cleared rect: alpha = %d, want 0", got.A)
	}
	if got := c.RGBA().RGBAAt(1, 1); got != opaque {
		t.Errorf("outside cleared rect: pixel = %v, want untouched %v", got, opaque)
	}
}

func TestClearRectClipsToBounds(t *testing.T) {
	c := filledCanvas(8, 8, opaque)
	ClearRect(c, -100, -100, 1000, 1000)
	if got := c.RGBA().RGBAAt(4, 4); got.A != 0 {
		t.Errorf("oversized clear left alpha = %d, want 0", got.A)
	}
}

func TestClearPolygon(t *testing.T) {
	c := filledCanvas(20, 20, opaque)
	// A triangle covering the upper-left half.
	ClearPolygon(c, []PointF{{0, 0}, {20, 0}, {0, 20}})

	if got := c.RGBA().RGBAAt(3, 3); got.A != 0 {
		t.Errorf("inside polygon: alpha = %d, want 0", got.A)
	}
	if got := c.RGBA().RGBAAt(18, 18); got != opaque {
		t.Errorf("outside polygon: pixel = %v, want untouched %v", got, opaque)
	}
}

func TestClearPolygonDegenerate(t *testing.T) {
	c := filledCanvas(8, 8, opaque)
	ClearPolygon(c, []PointF{{0, 0}, {8, 8}})
	if got := c.RGBA().RGBAAt(4, 4); got != opaque {
		t.Errorf("two-vertex path modified the surface: %v", got)
	}
}

func TestDrawImage(t *testing.T) {
	sprite := image.NewRGBA(image.Rect(0, 0, 8, 8))
	stddraw.Draw(sprite, sprite.Bounds(), image.NewUniform(opaque), image.Point{}, stddraw.Src)

	c := NewCanvas(0, 0, 16, 16)
	DrawImage(c, sprite, 0, 0, 8, 8, 4, 4, 1)

	if got := c.RGBA().RGBAAt(8, 8); got != opaque {
		t.Errorf("painted pixel = %v, want %v", got, opaque)
	}
	if got := c.RGBA().RGBAAt(1, 1); got.A != 0 {
		t.Errorf("outside destination: alpha = %d, want 0", got.A)
	}
}

func TestDrawImageZeroAlphaIsNoop(t *testing.T) {
	sprite := image.NewRGBA(image.Rect(0, 0, 8, 8))
	stddraw.Draw(sprite, sprite.Bounds(), image.NewUniform(opaque), image.Point{}, stddraw.Src)

	c := NewCanvas(0, 0, 16, 16)
	DrawImage(c, sprite, 0, 0, 8, 8, 4, 4, 0)

	for i, v := range c.RGBA().Pix {
		if v != 0 {
			t.Fatalf("zero-alpha draw touched byte %d (= %d)", i, v)
		}
	}
}

func TestDrawImageAlphaOverride(t *testing.T) {
	sprite := image.NewRGBA(image.Rect(0, 0, 8, 8))
	stddraw.Draw(sprite, sprite.Bounds(), image.NewUniform(opaque), image.Point{}, stddraw.Src)

	c := NewCanvas(0, 0, 16, 16)
	DrawImage(c, sprite, 0, 0, 8, 8, 0, 0, 0.5)

	got := c.RGBA().RGBAAt(4, 4)
	if got.A < 120 || got.A > 135 {
		t.Errorf("half-alpha draw: alpha = %d, want about 127", got.A)
	}
	if got.A == 255 {
		t.Error("alpha override was ignored")
	}
}

func TestFadeoutRect(t *testing.T) {
	c := filledCanvas(16, 16, opaque)
	FadeoutRect(c, 0, 0, 8, 16, 0.5)

	faded := c.RGBA().RGBAAt(4, 8)
	if faded.A < 120 || faded.A > 135 {
		t.Errorf("faded alpha = %d, want about 127", faded.A)
	}
	if faded.R >= opaque.R {
		t.Errorf("premultiplied color did not scale with alpha: R = %d", faded.R)
	}
	if got := c.RGBA().RGBAAt(12, 8); got != opaque {
		t.Errorf("outside fade region: pixel = %v, want untouched %v", got, opaque)
	}
}

func TestFadeoutRectFullAlphaErases(t *testing.T) {
	c := filledCanvas(8, 8, opaque)
	FadeoutRect(c, 0, 0, 8, 8, 1)
	if got := c.RGBA().RGBAAt(4, 4); got.A != 0 {
		t.Errorf("alpha 1 fadeout left alpha = %d, want 0", got.A)
	}
}

func TestFadeoutPolygon(t *testing.T) {
	c := filledCanvas(20, 20, opaque)
	FadeoutPolygon(c, []PointF{{0, 0}, {20, 0}, {0, 20}}, 1)

	if got := c.RGBA().RGBAAt(2, 2); got.A != 0 {
		t.Errorf("inside polygon: alpha = %d, want 0", got.A)
	}
	if got := c.RGBA().RGBAAt(18, 18); got != opaque {
		t.Errorf("outside polygon: pixel = %v, want untouched %v", got, opaque)
	}
}

func TestCanvasReset(t *testing.T) {
	c := filledCanvas(8, 8, opaque)
	c.Reset()
	for i, v := range c.RGBA().Pix {
		if v != 0 {
			t.Fatalf("Reset left byte %d = %d", i, v)
		}
	}
}

func TestNewCanvasNegativeSize(t *testing.T) {
	c := NewCanvas(2, 3, -5, -5)
	if !c.Bounds().Empty() {
		t.Errorf("negative size canvas has bounds %v, want empty", c.Bounds())
	}
	if c.Pos() != image.Pt(2, 3) {
		t.Errorf("Pos = %v, want (2,3)", c.Pos())
	}
}
