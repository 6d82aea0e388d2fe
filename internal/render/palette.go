package render

import (
	"image/color"
	"strings"
)

// Palette holds the three colors a feed render uses. Panel carries only the
// fill hue; each panel brings its own opacity.
type Palette struct {
	Name   string
	Text   color.NRGBA
	Accent color.NRGBA
	Panel  color.NRGBA
}

const (
	PaletteClassic   = "classic"
	PaletteModern    = "modern"
	PaletteExecutive = "executive"
	PaletteWarm      = "warm"
)

var white = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

var palettes = map[string]Palette{
	PaletteClassic: {
		Name:   PaletteClassic,
		Text:   white,
		Accent: color.NRGBA{R: 0xD4, G: 0xAF, B: 0x37, A: 0xFF},
		Panel:  color.NRGBA{A: 0xFF},
	},
	PaletteModern: {
		Name:   PaletteModern,
		Text:   white,
		Accent: color.NRGBA{R: 0xFA, G: 0xCC, B: 0x15, A: 0xFF},
		Panel:  color.NRGBA{R: 15, G: 23, B: 42, A: 0xFF},
	},
	PaletteExecutive: {
		Name:   PaletteExecutive,
		Text:   white,
		Accent: color.NRGBA{R: 0xC9, G: 0xA0, B: 0x50, A: 0xFF},
		Panel:  color.NRGBA{A: 0xFF},
	},
	PaletteWarm: {
		Name:   PaletteWarm,
		Text:   white,
		Accent: color.NRGBA{R: 0xFF, G: 0xB3, B: 0x66, A: 0xFF},
		Panel:  color.NRGBA{R: 30, G: 20, B: 10, A: 0xFF},
	},
}

// legacy keys still sent by older process definitions
var paletteAliases = map[string]string{
	"classico":  PaletteClassic,
	"moderno":   PaletteModern,
	"executivo": PaletteExecutive,
	"acolhedor": PaletteWarm,
}

// ResolvePalette returns the palette for key, or classic for anything
// unknown.
func ResolvePalette(key string) Palette {
	key = strings.ToLower(strings.TrimSpace(key))
	if alias, ok := paletteAliases[key]; ok {
		key = alias
	}
	if p, ok := palettes[key]; ok {
		return p
	}
	return palettes[PaletteClassic]
}

func PaletteKeys() []string {
	return []string{PaletteClassic, PaletteModern, PaletteExecutive, PaletteWarm}
}
