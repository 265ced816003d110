// Package skin holds the declarative visual-theme model: sprite sheets,
// per-layer canvas geometry, and per-control draw-instruction lists, plus the
// interpreter that executes those instructions against a drawing surface.
package skin

import "image"

// Skin is one named theme. Immutable after load.
type Skin struct {
	Name         string
	Sprites      []image.Image
	Layers       []LayerGeometry
	Sticks       []StickSpec
	ButtonGroups []ButtonGroupSpec
}

// LayerGeometry places one drawing surface inside the slot viewport.
type LayerGeometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// StickSpec describes how one analog stick is drawn.
// Fadeout is optional; a stick without it never dissolves when idle.
type StickSpec struct {
	Name    string
	Layer   int
	Clear   []Instruction
	On      []Instruction
	Off     []Instruction
	Fadeout []Instruction
}

// ButtonGroupSpec is a named group of buttons (e.g. "dpad", "face").
type ButtonGroupSpec struct {
	Name    string
	Buttons []ButtonSpec
}

type ButtonSpec struct {
	Name    string
	Layer   int
	Clear   []Instruction
	On      []Instruction
	Off     []Instruction
	Fadeout []Instruction
}

// IsDirnameOK reports whether name is a safe skin directory name.
// Checked before any file access; only [0-9a-zA-Z_-]+ is accepted.
func IsDirnameOK(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}
