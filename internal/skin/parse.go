package skin

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseSkin decodes a skin.json document into the immutable skin model and
// the sprite file names to load alongside it. Malformed instruction records
// are configuration errors and fail the whole load; an absent or non-array
// instruction-list field is simply skipped (nil list, no default behavior).
func ParseSkin(data []byte) (*Skin, []string, error) {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, nil, fmt.Errorf("skin config is not a JSON object")
	}

	s := &Skin{Name: root.Get("name").String()}

	var spriteFiles []string
	for _, v := range root.Get("sprites").Array() {
		spriteFiles = append(spriteFiles, v.String())
	}
	if len(spriteFiles) == 0 {
		return nil, nil, fmt.Errorf("skin %q declares no sprites", s.Name)
	}

	for _, v := range root.Get("layers").Array() {
		s.Layers = append(s.Layers, LayerGeometry{
			X:      int(v.Get("x").Int()),
			Y:      int(v.Get("y").Int()),
			Width:  int(v.Get("width").Int()),
			Height: int(v.Get("height").Int()),
		})
	}
	if len(s.Layers) == 0 {
		return nil, nil, fmt.Errorf("skin %q declares no layers", s.Name)
	}

	for _, v := range root.Get("sticks").Array() {
		stick := StickSpec{
			Name:  v.Get("name").String(),
			Layer: int(v.Get("layer").Int()),
		}
		if stick.Name == "" {
			return nil, nil, fmt.Errorf("skin %q: stick without a name", s.Name)
		}
		if err := checkLayer(stick.Layer, len(s.Layers)); err != nil {
			return nil, nil, fmt.Errorf("skin %q stick %q: %w", s.Name, stick.Name, err)
		}
		var err error
		if stick.Clear, err = parseList(v.Get("clear"), len(spriteFiles)); err != nil {
			return nil, nil, fmt.Errorf("skin %q stick %q clear: %w", s.Name, stick.Name, err)
		}
		if stick.On, err = parseList(v.Get("on"), len(spriteFiles)); err != nil {
			return nil, nil, fmt.Errorf("skin %q stick %q on: %w", s.Name, stick.Name, err)
		}
		if stick.Off, err = parseList(v.Get("off"), len(spriteFiles)); err != nil {
			return nil, nil, fmt.Errorf("skin %q stick %q off: %w", s.Name, stick.Name, err)
		}
		if stick.Fadeout, err = parseList(v.Get("fadeout"), len(spriteFiles)); err != nil {
			return nil, nil, fmt.Errorf("skin %q stick %q fadeout: %w", s.Name, stick.Name, err)
		}
		s.Sticks = append(s.Sticks, stick)
	}

	for _, g := range root.Get("buttons").Array() {
		group := ButtonGroupSpec{Name: g.Get("group").String()}
		if group.Name == "" {
			return nil, nil, fmt.Errorf("skin %q: button group without a name", s.Name)
		}
		for _, v := range g.Get("buttons").Array() {
			button := ButtonSpec{
				Name:  v.Get("name").String(),
				Layer: int(v.Get("layer").Int()),
			}
			if button.Name == "" {
				return nil, nil, fmt.Errorf("skin %q group %q: button without a name", s.Name, group.Name)
			}
			if err := checkLayer(button.Layer, len(s.Layers)); err != nil {
				return nil, nil, fmt.Errorf("skin %q button %q/%q: %w", s.Name, group.Name, button.Name, err)
			}
			var err error
			if button.Clear, err = parseList(v.Get("clear"), len(spriteFiles)); err != nil {
				return nil, nil, fmt.Errorf("skin %q button %q/%q clear: %w", s.Name, group.Name, button.Name, err)
			}
			if button.On, err = parseList(v.Get("on"), len(spriteFiles)); err != nil {
				return nil, nil, fmt.Errorf("skin %q button %q/%q on: %w", s.Name, group.Name, button.Name, err)
			}
			if button.Off, err = parseList(v.Get("off"), len(spriteFiles)); err != nil {
				return nil, nil, fmt.Errorf("skin %q button %q/%q off: %w", s.Name, group.Name, button.Name, err)
			}
			if button.Fadeout, err = parseList(v.Get("fadeout"), len(spriteFiles)); err != nil {
				return nil, nil, fmt.Errorf("skin %q button %q/%q fadeout: %w", s.Name, group.Name, button.Name, err)
			}
			group.Buttons = append(group.Buttons, button)
		}
		s.ButtonGroups = append(s.ButtonGroups, group)
	}

	return s, spriteFiles, nil
}

func checkLayer(layer, count int) error {
	if layer < 0 || layer >= count {
		return fmt.Errorf("layer %d out of range (have %d)", layer, count)
	}
	return nil
}

// parseList decodes one instruction list. An absent or non-array field is
// skipped entirely: the control then has no behavior for that phase.
func parseList(res gjson.Result, spriteCount int) ([]Instruction, error) {
	if !res.Exists() || !res.IsArray() {
		return nil, nil
	}
	var out []Instruction
	for i, rec := range res.Array() {
		ins, err := parseInstruction(rec, spriteCount)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		out = append(out, ins)
	}
	return out, nil
}

// Instruction records are arrays: [name, src?, literal args...]. Trailing
// literal parameters may be omitted and default to zero.
func parseInstruction(rec gjson.Result, spriteCount int) (Instruction, error) {
	if !rec.IsArray() {
		return nil, fmt.Errorf("record is not an array")
	}
	arr := rec.Array()
	if len(arr) == 0 {
		return nil, fmt.Errorf("empty record")
	}
	name := arr[0].String()
	args := arr[1:]

	num := func(i int) float64 {
		if i < len(args) {
			return args[i].Float()
		}
		return 0
	}
	flag := func(i int) bool { return num(i) != 0 }
	src := func(i int) (int, error) {
		idx := int(num(i))
		if idx < 0 || idx >= spriteCount {
			return 0, fmt.Errorf("%s: sprite index %d out of range (have %d)", name, idx, spriteCount)
		}
		return idx, nil
	}
	path := func(i int) ([]PathPoint, error) {
		if i >= len(args) || !args[i].IsArray() {
			return nil, fmt.Errorf("%s: missing polygon path", name)
		}
		var pts []PathPoint
		for _, v := range args[i].Array() {
			coords := v.Array()
			if len(coords) < 2 {
				return nil, fmt.Errorf("%s: path vertex needs at least [x, y]", name)
			}
			p := PathPoint{X: coords[0].Float(), Y: coords[1].Float()}
			if len(coords) > 2 {
				p.Scale = coords[2].Float()
			}
			pts = append(pts, p)
		}
		if len(pts) < 3 {
			return nil, fmt.Errorf("%s: path needs at least 3 vertices", name)
		}
		return pts, nil
	}

	switch name {
	case "clearRect":
		return ClearRect{X: num(0), Y: num(1), Width: num(2), Height: num(3)}, nil
	case "clearPolygon":
		p, err := path(0)
		if err != nil {
			return nil, err
		}
		return ClearPolygon{Path: p}, nil
	case "drawImage":
		idx, err := src(0)
		if err != nil {
			return nil, err
		}
		return DrawImage{Src: idx, SrcX: num(1), SrcY: num(2), Width: num(3), Height: num(4), DstX: num(5), DstY: num(6)}, nil
	case "drawImageByPos":
		idx, err := src(0)
		if err != nil {
			return nil, err
		}
		coord, err := parseCoord(args, 5, name)
		if err != nil {
			return nil, err
		}
		areaW, areaH, err := parseArea(args, 6, name)
		if err != nil {
			return nil, err
		}
		return DrawImageByPos{
			Src: idx, SrcX: num(1), SrcY: num(2), Width: num(3), Height: num(4),
			Coord: coord, AreaW: areaW, AreaH: areaH,
		}, nil
	case "drawImageInPolygon":
		idx, err := src(0)
		if err != nil {
			return nil, err
		}
		p, err := path(1)
		if err != nil {
			return nil, err
		}
		return DrawImageInPolygon{Src: idx, Path: p, SrcX: num(2), SrcY: num(3), Width: num(4), Height: num(5), DstX: num(6), DstY: num(7)}, nil
	case "drawImageInPolygonByValue":
		idx, err := src(0)
		if err != nil {
			return nil, err
		}
		p, err := path(1)
		if err != nil {
			return nil, err
		}
		return DrawImageInPolygonByValue{Src: idx, Path: p, AreaWidth: num(2), SrcX: num(3), SrcY: num(4), Width: num(5), Height: num(6), DstX: num(7), DstY: num(8)}, nil
	case "clearParallelogram":
		return ClearParallelogram{X: num(0), Y: num(1), Width: num(2), Height: num(3), Skew: num(4), SkewAway: flag(5), Vertical: flag(6)}, nil
	case "clearParallelogramByValue":
		return ClearParallelogramByValue{X: num(0), Y: num(1), Width: num(2), Height: num(3), Skew: num(4), SkewAway: flag(5), Vertical: flag(6)}, nil
	case "fadeoutRect":
		return FadeoutRect{X: num(0), Y: num(1), Width: num(2), Height: num(3)}, nil
	case "fadeoutPolygon":
		p, err := path(0)
		if err != nil {
			return nil, err
		}
		return FadeoutPolygon{Path: p}, nil
	}
	return nil, fmt.Errorf("unknown instruction %q", name)
}

// coord template: [x, y, signX?, signY?]; signs default to 1.
func parseCoord(args []gjson.Result, i int, name string) (CoordTemplate, error) {
	if i >= len(args) || !args[i].IsArray() {
		return CoordTemplate{}, fmt.Errorf("%s: missing coord template", name)
	}
	v := args[i].Array()
	if len(v) < 2 {
		return CoordTemplate{}, fmt.Errorf("%s: coord template needs at least [x, y]", name)
	}
	c := CoordTemplate{X: v[0].Float(), Y: v[1].Float(), SignX: 1, SignY: 1}
	if len(v) > 2 {
		c.SignX = v[2].Float()
	}
	if len(v) > 3 {
		c.SignY = v[3].Float()
	}
	return c, nil
}

func parseArea(args []gjson.Result, i int, name string) (float64, float64, error) {
	if i >= len(args) || !args[i].IsArray() {
		return 0, 0, fmt.Errorf("%s: missing area size", name)
	}
	v := args[i].Array()
	if len(v) < 2 {
		return 0, 0, fmt.Errorf("%s: area size needs [width, height]", name)
	}
	return v[0].Float(), v[1].Float(), nil
}
