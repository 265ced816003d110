package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

const seededSkinName = "simpad"

// seededSkinJSON is a small but complete skin: one layer, two sticks with
// position-tracked knobs, and a dpad group. All four instruction-list phases
// are exercised, including fadeout.
const seededSkinJSON = `{
  "name": "simpad",
  "sprites": ["sheet.png"],
  "layers": [{"x": 0, "y": 0, "width": 320, "height": 240}],
  "sticks": [
    {
      "name": "left", "layer": 0,
      "clear":   [["clearRect", 16, 60, 160, 160]],
      "off":     [["drawImageByPos", 0, 0, 0, 64, 64, [16, 60], [96, 96]]],
      "on":      [["drawImageByPos", 0, 64, 0, 64, 64, [16, 60], [96, 96]]],
      "fadeout": [["fadeoutRect", 16, 60, 160, 160]]
    },
    {
      "name": "right", "layer": 0,
      "clear":   [["clearRect", 160, 60, 160, 160]],
      "off":     [["drawImageByPos", 0, 0, 0, 64, 64, [160, 60], [96, 96]]],
      "on":      [["drawImageByPos", 0, 64, 0, 64, 64, [160, 60], [96, 96]]],
      "fadeout": [["fadeoutRect", 160, 60, 160, 160]]
    }
  ],
  "buttons": [
    {
      "group": "dpad",
      "buttons": [
        {
          "name": "up", "layer": 0,
          "clear":   [["clearRect", 240, 8, 32, 32]],
          "off":     [["drawImage", 0, 128, 0, 32, 32, 240, 8]],
          "on":      [["drawImage", 0, 160, 0, 32, 32, 240, 8]],
          "fadeout": [["fadeoutRect", 240, 8, 32, 32]]
        },
        {
          "name": "down", "layer": 0,
          "clear":   [["clearRect", 240, 72, 32, 32]],
          "off":     [["drawImage", 0, 128, 0, 32, 32, 240, 72]],
          "on":      [["drawImage", 0, 160, 0, 32, 32, 240, 72]],
          "fadeout": [["fadeoutRect", 240, 72, 32, 32]]
        },
        {
          "name": "left", "layer": 0,
          "clear":   [["clearRect", 208, 40, 32, 32]],
          "off":     [["drawImage", 0, 128, 0, 32, 32, 208, 40]],
          "on":      [["drawImage", 0, 160, 0, 32, 32, 208, 40]],
          "fadeout": [["fadeoutRect", 208, 40, 32, 32]]
        },
        {
          "name": "right", "layer": 0,
          "clear":   [["clearRect", 272, 40, 32, 32]],
          "off":     [["drawImage", 0, 128, 0, 32, 32, 272, 40]],
          "on":      [["drawImage", 0, 160, 0, 32, 32, 272, 40]],
          "fadeout": [["fadeoutRect", 272, 40, 32, 32]]
        }
      ]
    }
  ]
}`

// seedSkin writes the generated skin into <root>/<name>/ so the registry can
// load it like any hand-made one. Existing files are overwritten, keeping the
// seed in sync with this binary.
func seedSkin(root, name string) error {
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "skin.json"), []byte(seededSkinJSON), 0o644); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, "sheet.png"))
	if err != nil {
		return err
	}
	if err := png.Encode(f, seedSheet()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// seedSheet draws the sprite regions the seeded skin.json refers to:
// stick knobs (off, on) at x 0 and 64, dpad caps (off, on) at x 128 and 160.
func seedSheet() *image.RGBA {
	sheet := image.NewRGBA(image.Rect(0, 0, 256, 128))

	knobOff := color.RGBA{R: 0x60, G: 0x68, B: 0x78, A: 0xFF}
	knobOn := color.RGBA{R: 0x4F, G: 0xA8, B: 0xE8, A: 0xFF}
	capOff := color.RGBA{R: 0x50, G: 0x50, B: 0x58, A: 0xFF}
	capOn := color.RGBA{R: 0xE8, G: 0x9A, B: 0x3C, A: 0xFF}

	fillDisc(sheet, image.Rect(0, 0, 64, 64), knobOff)
	fillDisc(sheet, image.Rect(64, 0, 128, 64), knobOn)
	draw.Draw(sheet, image.Rect(128, 0, 160, 32), image.NewUniform(capOff), image.Point{}, draw.Src)
	draw.Draw(sheet, image.Rect(160, 0, 192, 32), image.NewUniform(capOn), image.Point{}, draw.Src)

	return sheet
}

func fillDisc(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	radius := float64(r.Dx()) / 2
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= radius*radius {
				dst.SetRGBA(x, y, c)
			}
		}
	}
}
