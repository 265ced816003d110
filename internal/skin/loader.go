package skin

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// DirLoader loads skins from <Root>/<dirname>/skin.json plus the PNG sprite
// sheets the config names. Dirnames are validated by the registry before any
// file access happens here.
type DirLoader struct {
	Root string
}

func (l DirLoader) Load(dirname string) (*Skin, error) {
	dir := filepath.Join(l.Root, dirname)
	data, err := os.ReadFile(filepath.Join(dir, "skin.json"))
	if err != nil {
		return nil, fmt.Errorf("read skin config: %w", err)
	}
	s, spriteFiles, err := ParseSkin(data)
	if err != nil {
		return nil, fmt.Errorf("parse skin config: %w", err)
	}
	for _, name := range spriteFiles {
		raw, err := os.ReadFile(filepath.Join(dir, filepath.Base(name)))
		if err != nil {
			return nil, fmt.Errorf("read sprite %s: %w", name, err)
		}
		img, err := png.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode sprite %s: %w", name, err)
		}
		s.Sprites = append(s.Sprites, img)
	}
	return s, nil
}
