package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	headlineSize  = 42
	areaLabelSize = 28
	nameSize      = 36
	regNumberSize = 26
	bulletSize    = 32
)

var (
	fontsOnce   sync.Once
	boldFont    *truetype.Font
	regularFont *truetype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if boldFont, fontsErr = truetype.Parse(gobold.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse bold font: %w", fontsErr)
			return
		}
		if regularFont, fontsErr = truetype.Parse(goregular.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse regular font: %w", fontsErr)
		}
	})
	return fontsErr
}

// faces are per render: truetype faces cache glyphs and are not safe for
// concurrent use.
type faces struct {
	headline  font.Face
	areaLabel font.Face
	name      font.Face
	regNumber font.Face
	bullet    font.Face
}

func newFaces() *faces {
	return &faces{
		headline:  truetype.NewFace(boldFont, &truetype.Options{Size: headlineSize}),
		areaLabel: truetype.NewFace(boldFont, &truetype.Options{Size: areaLabelSize}),
		name:      truetype.NewFace(boldFont, &truetype.Options{Size: nameSize}),
		regNumber: truetype.NewFace(regularFont, &truetype.Options{Size: regNumberSize}),
		bullet:    truetype.NewFace(regularFont, &truetype.Options{Size: bulletSize}),
	}
}

func (f *faces) Close() {
	for _, face := range []font.Face{f.headline, f.areaLabel, f.name, f.regNumber, f.bullet} {
		face.Close()
	}
}
