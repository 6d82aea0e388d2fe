package render

import "math"

const (
	sideMargin  = 60
	panelRadius = 20

	headerTop        = 30
	minHeaderHeight  = 180
	headerBaseOffset = 80
	headerLineHeight = 50
	headerTextInset  = 40
	areaLabelOffset  = 45
	headerTextOffset = 90
	headerOpacity    = 0.8

	footerHeight       = 140
	footerBottomMargin = 30
	footerNameOffset   = 55
	footerRegOffset    = 100
	footerOpacity      = 0.8

	bulletGap          = 40
	bulletRowHeight    = 70
	bulletPadding      = 60
	bulletFooterMargin = 70
	bulletFirstRow     = 50
	bulletRowStep      = 65
	bulletIconX        = 100
	bulletTextX        = 140
	bulletTextInset    = 100
	bulletIconSize     = 26
	bulletOpacity      = 0.75

	// MaxRenderedBullets caps the rows drawn in the bullet panel.
	MaxRenderedBullets = 5

	badgeSize       = 70
	badgeInset      = 110
	badgeTop        = 40
	badgeDiscRadius = 40
	badgeDiscAlpha  = 0.6
)

// Panel is a rounded translucent overlay in output pixel space.
type Panel struct {
	X, Y, W, H float64
	Radius     float64
	Opacity    float64
}

func (p Panel) Bottom() float64 { return p.Y + p.H }

func headerTextWidth(width float64) float64 {
	return width - 2*sideMargin - headerTextInset
}

func bulletTextWidth(width float64) float64 {
	return width - 2*sideMargin - bulletTextInset
}

func headerPanel(width float64, lineCount int) Panel {
	h := math.Max(minHeaderHeight, float64(headerBaseOffset+lineCount*headerLineHeight))
	return Panel{
		X:       sideMargin,
		Y:       headerTop,
		W:       width - 2*sideMargin,
		H:       h,
		Radius:  panelRadius,
		Opacity: headerOpacity,
	}
}

func footerPanel(width, height float64) Panel {
	return Panel{
		X:       sideMargin,
		Y:       height - footerHeight - footerBottomMargin,
		W:       width - 2*sideMargin,
		H:       footerHeight,
		Radius:  panelRadius,
		Opacity: footerOpacity,
	}
}

// bulletPanel places the bullet panel between header and footer. It never
// reaches below footer.Y - bulletFooterMargin; ok is false when no room
// or no bullets remain.
func bulletPanel(width float64, header, footer Panel, count int) (Panel, bool) {
	if count <= 0 {
		return Panel{}, false
	}
	if count > MaxRenderedBullets {
		count = MaxRenderedBullets
	}

	y := header.Bottom() + bulletGap
	h := math.Min(
		float64(count*bulletRowHeight+bulletPadding),
		footer.Y-bulletFooterMargin-y,
	)
	if h <= 0 {
		return Panel{}, false
	}

	return Panel{
		X:       sideMargin,
		Y:       y,
		W:       width - 2*sideMargin,
		H:       h,
		Radius:  panelRadius,
		Opacity: bulletOpacity,
	}, true
}

// bulletBaselines returns the baseline of each row that fits inside p.
func bulletBaselines(p Panel, count int) []float64 {
	if count > MaxRenderedBullets {
		count = MaxRenderedBullets
	}
	var rows []float64
	for i := 0; i < count; i++ {
		y := p.Y + bulletFirstRow + float64(i*bulletRowStep)
		if y > p.Bottom() {
			break
		}
		rows = append(rows, y)
	}
	return rows
}

// badgeOrigin is the top-left corner of the logo square.
func badgeOrigin(width float64) (float64, float64) {
	return width - badgeInset, badgeTop
}
