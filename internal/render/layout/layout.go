// Package layout carves the logical canvas into per-slot viewports.
package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitVertical splits rect into left and right parts.
// leftWidthPx is clamped to [0, rect.Dx()].
func SplitVertical(rect image.Rectangle, leftWidthPx int) (left image.Rectangle, right image.Rectangle) {
	rect = Normalize(rect)
	width := rect.Dx()
	if leftWidthPx < 0 {
		leftWidthPx = 0
	}
	if leftWidthPx > width {
		leftWidthPx = width
	}
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftWidthPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftWidthPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// Grid2x2 splits rect into four equal quadrants, row-major.
func Grid2x2(rect image.Rectangle) [4]image.Rectangle {
	rect = Normalize(rect)
	midX := rect.Min.X + rect.Dx()/2
	midY := rect.Min.Y + rect.Dy()/2
	return [4]image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, midX, midY),
		image.Rect(midX, rect.Min.Y, rect.Max.X, midY),
		image.Rect(rect.Min.X, midY, midX, rect.Max.Y),
		image.Rect(midX, midY, rect.Max.X, rect.Max.Y),
	}
}

// Viewports returns count viewport rectangles inside rect: the whole canvas
// for one slot, halves for two, quadrants beyond that (capped at four).
func Viewports(rect image.Rectangle, count int) []image.Rectangle {
	const padding = 8
	switch {
	case count <= 0:
		return nil
	case count == 1:
		return []image.Rectangle{Inset(rect, padding)}
	case count == 2:
		left, right := SplitVertical(rect, rect.Dx()/2)
		return []image.Rectangle{Inset(left, padding), Inset(right, padding)}
	default:
		quads := Grid2x2(rect)
		if count > 4 {
			count = 4
		}
		out := make([]image.Rectangle, count)
		for i := 0; i < count; i++ {
			out[i] = Inset(quads[i], padding)
		}
		return out
	}
}
