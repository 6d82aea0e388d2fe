package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

const (
	shadowOffset = 2
	shadowSigma  = 5
	shadowAlpha  = 0.8
	// room around the shadow layer so the blur does not clip
	shadowPad = 3 * shadowSigma
)

// command is one draw step. Commands are applied in order to a single
// context; later commands paint over earlier ones.
type command interface {
	apply(dc *gg.Context)
}

type fillPanel struct {
	panel Panel
	color color.NRGBA
}

func (c fillPanel) apply(dc *gg.Context) {
	p := c.panel
	dc.SetRGBA(float64(c.color.R)/255, float64(c.color.G)/255, float64(c.color.B)/255, p.Opacity)
	dc.DrawRoundedRectangle(p.X, p.Y, p.W, p.H, p.Radius)
	dc.Fill()
}

// drawText draws text with its baseline at y. ax is the horizontal anchor:
// 0 left, 0.5 centered.
type drawText struct {
	text  string
	x, y  float64
	ax    float64
	face  font.Face
	color color.NRGBA
}

func (c drawText) apply(dc *gg.Context) {
	dc.SetFontFace(c.face)
	w, h := dc.MeasureString(c.text)
	left := c.x - c.ax*w
	top := c.y - h

	drawShadow(dc, left, top, w, 1.5*h, func(layer *gg.Context, ox, oy float64) {
		layer.SetFontFace(c.face)
		layer.DrawString(c.text, left-ox, c.y-oy)
	})

	dc.SetColor(c.color)
	dc.DrawString(c.text, left, c.y)
}

// checkmark is stroked rather than drawn as a glyph; the embedded fonts
// have no check mark.
type checkmark struct {
	x, y  float64
	size  float64
	color color.NRGBA
}

func (c checkmark) path(dc *gg.Context, ox, oy float64) {
	s := c.size
	dc.SetLineWidth(math.Max(3, s/7))
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.MoveTo(c.x-ox, c.y-oy-0.45*s)
	dc.LineTo(c.x-ox+0.35*s, c.y-oy-0.1*s)
	dc.LineTo(c.x-ox+s, c.y-oy-0.85*s)
	dc.Stroke()
}

func (c checkmark) apply(dc *gg.Context) {
	drawShadow(dc, c.x, c.y-c.size, c.size, c.size, c.path)
	dc.SetColor(c.color)
	c.path(dc, 0, 0)
}

type badge struct {
	logo image.Image
	x, y float64
}

func (c badge) apply(dc *gg.Context) {
	dc.SetRGBA(0, 0, 0, badgeDiscAlpha)
	dc.DrawCircle(c.x+badgeSize/2, c.y+badgeSize/2, badgeDiscRadius)
	dc.Fill()

	logo := imaging.Resize(c.logo, badgeSize, badgeSize, imaging.Lanczos)
	dc.DrawImage(logo, int(c.x), int(c.y))
}

// drawShadow paints a soft drop shadow for the shape inside the box at
// (x, y, w, h). paint draws the shape on a scratch layer whose origin sits
// at (ox, oy) in output space, using the layer's current color.
func drawShadow(dc *gg.Context, x, y, w, h float64, paint func(layer *gg.Context, ox, oy float64)) {
	if w <= 0 || h <= 0 {
		return
	}

	ox := math.Floor(x) - shadowPad
	oy := math.Floor(y) - shadowPad
	layer := gg.NewContext(int(math.Ceil(w))+2*shadowPad+1, int(math.Ceil(h))+2*shadowPad+1)
	layer.SetRGBA(0, 0, 0, shadowAlpha)
	paint(layer, ox, oy)

	blurred := imaging.Blur(layer.Image(), shadowSigma)
	dc.DrawImage(blurred, int(ox)+shadowOffset, int(oy)+shadowOffset)
}
