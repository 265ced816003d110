package skin

import (
	"strings"
	"testing"
)

const validSkinJSON = `{
  "name": "testpad",
  "sprites": ["sheet.png", "extra.png"],
  "layers": [{"x": 0, "y": 0, "width": 100, "height": 100}],
  "sticks": [
    {
      "name": "left", "layer": 0,
      "clear": [["clearRect", 0, 0, 50, 50]],
      "off": [["drawImageByPos", 0, 0, 0, 16, 16, [10, 10, 1, -1], [32, 32]]],
      "on": [["drawImage", 1, 0, 0, 16, 16, 10, 10]],
      "fadeout": [["fadeoutRect", 0, 0, 50, 50]]
    }
  ],
  "buttons": [
    {
      "group": "dpad",
      "buttons": [
        {
          "name": "up", "layer": 0,
          "clear": [["clearPolygon", [[0, 0], [10, 0], [5, 10]]]],
          "on": [["drawImageInPolygonByValue", 0, [[0, 0, 1], [10, 0], [5, 10]], 40, 0, 0, 16, 16, 2, 2]],
          "off": [["clearParallelogram", 1, 2, 30, 10, 5, 1, 0]]
        }
      ]
    }
  ]
}`

func TestParseSkinValid(t *testing.T) {
	s, sprites, err := ParseSkin([]byte(validSkinJSON))
	if err != nil {
		t.Fatalf("ParseSkin returned %v", err)
	}
	if s.Name != "testpad" {
		t.Errorf("Name = %q, want testpad", s.Name)
	}
	if len(sprites) != 2 || sprites[0] != "sheet.png" {
		t.Errorf("sprite files = %v, want [sheet.png extra.png]", sprites)
	}
	if len(s.Layers) != 1 || s.Layers[0].Width != 100 {
		t.Fatalf("layers = %v", s.Layers)
	}
	if len(s.Sticks) != 1 || len(s.ButtonGroups) != 1 {
		t.Fatalf("sticks = %d, groups = %d, want 1 and 1", len(s.Sticks), len(s.ButtonGroups))
	}

	stick := s.Sticks[0]
	if len(stick.Clear) != 1 || len(stick.On) != 1 || len(stick.Off) != 1 || len(stick.Fadeout) != 1 {
		t.Fatalf("stick lists = %d/%d/%d/%d, want 1 each",
			len(stick.Clear), len(stick.On), len(stick.Off), len(stick.Fadeout))
	}
	byPos, ok := stick.Off[0].(DrawImageByPos)
	if !ok {
		t.Fatalf("stick off[0] = %T, want DrawImageByPos", stick.Off[0])
	}
	if byPos.Coord.SignX != 1 || byPos.Coord.SignY != -1 {
		t.Errorf("coord signs = (%v, %v), want (1, -1)", byPos.Coord.SignX, byPos.Coord.SignY)
	}
	if byPos.AreaW != 32 || byPos.AreaH != 32 {
		t.Errorf("area = (%v, %v), want (32, 32)", byPos.AreaW, byPos.AreaH)
	}

	button := s.ButtonGroups[0].Buttons[0]
	if button.Fadeout != nil {
		t.Error("absent fadeout list should parse as nil")
	}
	byValue, ok := button.On[0].(DrawImageInPolygonByValue)
	if !ok {
		t.Fatalf("button on[0] = %T, want DrawImageInPolygonByValue", button.On[0])
	}
	if byValue.AreaWidth != 40 {
		t.Errorf("AreaWidth = %v, want 40", byValue.AreaWidth)
	}
	if byValue.Path[0].Scale != 1 || byValue.Path[1].Scale != 0 {
		t.Errorf("vertex scales = (%v, %v), want (1, 0)", byValue.Path[0].Scale, byValue.Path[1].Scale)
	}
	para, ok := button.Off[0].(ClearParallelogram)
	if !ok {
		t.Fatalf("button off[0] = %T, want ClearParallelogram", button.Off[0])
	}
	if !para.SkewAway || para.Vertical {
		t.Errorf("parallelogram flags = skewAway %v vertical %v, want true false", para.SkewAway, para.Vertical)
	}
}

func TestParseSkinDefaultsTrailingArgs(t *testing.T) {
	doc := `{
	  "name": "minimal",
	  "sprites": ["s.png"],
	  "layers": [{"width": 10, "height": 10}],
	  "sticks": [{"name": "left", "layer": 0, "clear": [["clearRect"]]}]
	}`
	s, _, err := ParseSkin([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSkin returned %v", err)
	}
	cr, ok := s.Sticks[0].Clear[0].(ClearRect)
	if !ok {
		t.Fatalf("clear[0] = %T, want ClearRect", s.Sticks[0].Clear[0])
	}
	if cr.X != 0 || cr.Width != 0 {
		t.Errorf("omitted args = %+v, want zeros", cr)
	}
	if s.Sticks[0].On != nil {
		t.Error("absent on list should parse as nil")
	}
}

func TestParseSkinErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		frag string
	}{
		{"not an object", `[1, 2]`, "not a JSON object"},
		{"no sprites", `{"name": "x", "layers": [{"width": 1, "height": 1}]}`, "no sprites"},
		{"no layers", `{"name": "x", "sprites": ["s.png"]}`, "no layers"},
		{
			"unknown instruction",
			`{"name": "x", "sprites": ["s.png"], "layers": [{"width": 1, "height": 1}],
			  "sticks": [{"name": "left", "layer": 0, "clear": [["bogus"]]}]}`,
			"unknown instruction",
		},
		{
			"sprite index out of range",
			`{"name": "x", "sprites": ["s.png"], "layers": [{"width": 1, "height": 1}],
			  "sticks": [{"name": "left", "layer": 0, "on": [["drawImage", 3]]}]}`,
			"out of range",
		},
		{
			"layer out of range",
			`{"name": "x", "sprites": ["s.png"], "layers": [{"width": 1, "height": 1}],
			  "sticks": [{"name": "left", "layer": 2}]}`,
			"out of range",
		},
		{
			"nameless stick",
			`{"name": "x", "sprites": ["s.png"], "layers": [{"width": 1, "height": 1}],
			  "sticks": [{"layer": 0}]}`,
			"without a name",
		},
		{
			"short polygon",
			`{"name": "x", "sprites": ["s.png"], "layers": [{"width": 1, "height": 1}],
			  "sticks": [{"name": "left", "layer": 0, "clear": [["clearPolygon", [[0, 0], [1, 1]]]]}]}`,
			"at least 3 vertices",
		},
		{
			"missing coord template",
			`{"name": "x", "sprites": ["s.png"], "layers": [{"width": 1, "height": 1}],
			  "sticks": [{"name": "left", "layer": 0, "on": [["drawImageByPos", 0, 0, 0, 16, 16]]}]}`,
			"coord",
		},
	}
	for _, tt := range tests {
		_, _, err := ParseSkin([]byte(tt.doc))
		if err == nil {
			t.Errorf("%s: ParseSkin returned nil error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.frag) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.frag)
		}
	}
}
