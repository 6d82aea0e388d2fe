// Package render composes feed images: translucent panels, wrapped text,
// bullet rows and a logo badge painted over a base photo.
package render

import (
	"bytes"
	"context"
	"image"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"juriscontent-workers/internal/assets"
	"juriscontent-workers/internal/common/errors"
	"juriscontent-workers/internal/common/logger"
	"juriscontent-workers/internal/common/metrics"
	"juriscontent-workers/internal/content"
)

const DefaultJPEGQuality = 95

// Request is one feed render. Headline and Bullets, when set, take
// precedence over the normalized fields.
type Request struct {
	BaseImage []byte
	Fields    content.Fields
	Headline  string
	AreaLabel string
	Bullets   []string
	Palette   Palette
	Format    Format
	Branding  content.Branding
}

func (r Request) headline() string {
	if strings.TrimSpace(r.Headline) != "" {
		return r.Headline
	}
	return r.Fields.Primary
}

func (r Request) bullets() []string {
	source := r.Fields.Bullets
	if r.Bullets != nil {
		source = r.Bullets
	}
	out := make([]string, 0, len(source))
	for _, b := range source {
		if strings.TrimSpace(b) != "" {
			out = append(out, b)
		}
	}
	return out
}

type Engine struct {
	quality int
	logger  logger.Logger
}

func NewEngine(quality int, log logger.Logger) (*Engine, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Engine{
		quality: quality,
		logger:  log.WithFields(map[string]interface{}{"component": "render"}),
	}, nil
}

// Compose renders req and returns the encoded JPEG. Only base image decode
// and output encode failures are returned; a bad logo is logged and left
// out.
func (e *Engine) Compose(ctx context.Context, req Request) ([]byte, error) {
	start := time.Now()

	if req.Format.Width == 0 || req.Format.Height == 0 {
		req.Format = ResolveFormat(req.Format.Name)
	}
	if req.Palette.Name == "" {
		req.Palette = ResolvePalette("")
	}

	src, err := imaging.Decode(bytes.NewReader(req.BaseImage))
	if err != nil {
		return nil, &errors.AssetDecodeError{Asset: "base image", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewRenderTimeoutError("decode")
	}

	dc := gg.NewContextForImage(imaging.Resize(src, req.Format.Width, req.Format.Height, imaging.Lanczos))

	f := newFaces()
	defer f.Close()

	for _, cmd := range e.plan(dc, f, req, e.decodeLogo(req.Branding.Logo)) {
		cmd.apply(dc)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.NewRenderTimeoutError("draw")
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dc.Image(), imaging.JPEG, imaging.JPEGQuality(e.quality)); err != nil {
		return nil, &errors.AssetEncodeError{Format: "jpeg", Err: err}
	}

	metrics.ImagesRendered.WithLabelValues(req.Format.Name, req.Palette.Name).Inc()
	metrics.RenderDuration.WithLabelValues(req.Format.Name).Observe(time.Since(start).Seconds())
	return buf.Bytes(), nil
}

// plan lays out every draw command for req in paint order: header,
// footer, bullets, badge.
func (e *Engine) plan(m *gg.Context, f *faces, req Request, logo image.Image) []command {
	width := float64(req.Format.Width)
	height := float64(req.Format.Height)
	centerX := width / 2
	pal := req.Palette

	var cmds []command

	m.SetFontFace(f.headline)
	lines := Wrap(m, req.headline(), headerTextWidth(width))
	header := headerPanel(width, len(lines))
	cmds = append(cmds, fillPanel{panel: header, color: pal.Panel})

	if label := strings.TrimSpace(req.AreaLabel); label != "" {
		cmds = append(cmds, drawText{
			text: strings.ToUpper(label), x: centerX, y: header.Y + areaLabelOffset,
			ax: 0.5, face: f.areaLabel, color: pal.Accent,
		})
	}
	for i, line := range lines {
		cmds = append(cmds, drawText{
			text: line, x: centerX, y: header.Y + headerTextOffset + float64(i*headerLineHeight),
			ax: 0.5, face: f.headline, color: pal.Text,
		})
	}

	footer := footerPanel(width, height)
	cmds = append(cmds, fillPanel{panel: footer, color: pal.Panel})
	if name := strings.TrimSpace(req.Branding.Name); name != "" {
		cmds = append(cmds, drawText{
			text: name, x: centerX, y: footer.Y + footerNameOffset,
			ax: 0.5, face: f.name, color: pal.Accent,
		})
	}
	if reg := strings.TrimSpace(req.Branding.Registration); reg != "" {
		cmds = append(cmds, drawText{
			text: reg, x: centerX, y: footer.Y + footerRegOffset,
			ax: 0.5, face: f.regNumber, color: pal.Text,
		})
	}

	bullets := req.bullets()
	if panel, ok := bulletPanel(width, header, footer, len(bullets)); ok {
		cmds = append(cmds, fillPanel{panel: panel, color: pal.Panel})
		m.SetFontFace(f.bullet)
		for i, y := range bulletBaselines(panel, len(bullets)) {
			wrapped := Wrap(m, bullets[i], bulletTextWidth(width))
			if len(wrapped) == 0 {
				continue
			}
			cmds = append(cmds,
				checkmark{x: bulletIconX, y: y, size: bulletIconSize, color: pal.Accent},
				// one line per row; the panel height assumes it
				drawText{text: wrapped[0], x: bulletTextX, y: y, face: f.bullet, color: pal.Text},
			)
		}
	}

	if logo != nil {
		x, y := badgeOrigin(width)
		cmds = append(cmds, badge{logo: logo, x: x, y: y})
	}

	return cmds
}

// decodeLogo accepts a bare base64 payload or a data URI. Failures return
// nil so the render goes on without a badge.
func (e *Engine) decodeLogo(logo string) image.Image {
	ref := assets.NormalizeLogo(logo)
	if ref == "" {
		return nil
	}

	_, data, err := assets.ParseDataURI(ref)
	if err == nil {
		var img image.Image
		if img, err = imaging.Decode(bytes.NewReader(data)); err == nil {
			return img
		}
	}

	metrics.LogoFailures.Inc()
	e.logger.Warn("logo could not be decoded, rendering without badge", map[string]interface{}{
		"error": err.Error(),
	})
	return nil
}
