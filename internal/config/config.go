// Package config loads padview.ini. Missing files fall back to the built-in
// defaults so both binaries run out of the box.
package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

const defaultConfig = `
[Display]
FrameRate = 30
Framebuffer = /dev/fb0
Font =

[Skins]
Dir = skins
; unmapped sources containing FallbackMatch (case-insensitive) get
; FallbackSkin, everything else DefaultSkin
FallbackMatch = xbox
FallbackSkin = xbox360
DefaultSkin = ds4

[Prefs]
Path = prefs.json

[Web]
Listen = :8080
`

type Config struct {
	Display struct {
		FrameRate   int    `ini:"FrameRate"`
		Framebuffer string `ini:"Framebuffer"`
		Font        string `ini:"Font"`
	} `ini:"Display"`
	Skins struct {
		Dir           string `ini:"Dir"`
		FallbackMatch string `ini:"FallbackMatch"`
		FallbackSkin  string `ini:"FallbackSkin"`
		DefaultSkin   string `ini:"DefaultSkin"`
	} `ini:"Skins"`
	Prefs struct {
		Path string `ini:"Path"`
	} `ini:"Prefs"`
	Web struct {
		Listen string `ini:"Listen"`
	} `ini:"Web"`
}

// Load reads path over the built-in defaults; a missing file is not an error.
func Load(path string) (*Config, error) {
	options := ini.LoadOptions{SkipUnrecognizableLines: true}
	sources := []interface{}{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			sources = append(sources, path)
		}
	}
	file, err := ini.LoadSources(options, []byte(defaultConfig), sources...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	var c Config
	if err := file.MapTo(&c); err != nil {
		return nil, fmt.Errorf("map config: %w", err)
	}
	if c.Display.FrameRate <= 0 {
		c.Display.FrameRate = 30
	}
	return &c, nil
}
