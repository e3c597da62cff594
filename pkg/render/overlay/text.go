package overlay

import (
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/MalchuL/vision-ocr-dumper/pkg/annotation"
)

const (
	// Labels longer than maxLabelLen are cut to truncLabelLen runes plus
	// an ellipsis marker.
	maxLabelLen   = 20
	truncLabelLen = 17
	ellipsis      = "..."

	// bottomMargin keeps a label off the bottom edge when its anchor
	// falls below the surface.
	bottomMargin = 5

	// backgroundPad is the padding around the text footprint when a
	// background rectangle is drawn.
	backgroundPad = 2
)

// truncateLabel shortens text for display. Text over maxLabelLen runes is
// cut to its first truncLabelLen runes followed by an ellipsis marker;
// shorter text is returned unmodified.
func truncateLabel(text string) string {
	runes := []rune(text)
	if len(runes) <= maxLabelLen {
		return text
	}
	return string(runes[:truncLabelLen]) + ellipsis
}

// measureText returns the rendered footprint of text under face: advance
// width, height above the baseline, and descent below it, in whole pixels.
func measureText(face font.Face, text string) (width, height, descent int) {
	d := font.Drawer{Face: face}
	width = d.MeasureString(text).Ceil()
	m := face.Metrics()
	return width, m.Ascent.Ceil(), m.Descent.Ceil()
}

// clampAnchor moves a text baseline anchor so the footprint fits inside a
// surfW×surfH surface. The four rules are independent and applied in
// order: x-low, y-low, x-high, y-high.
func clampAnchor(x, y, textW, textH, surfW, surfH int) (int, int) {
	if x < 0 {
		x = 0
	}
	if y < textH {
		y = textH + bottomMargin
	}
	if x+textW > surfW {
		x = surfW - textW
	}
	if y > surfH {
		y = surfH - bottomMargin
	}
	return x, y
}

// drawLabel draws text anchored at the given point, clamped into the
// surface. The anchor is the text baseline origin. Empty text or a level
// with labels disabled draws nothing.
func drawLabel(dc *gg.Context, text string, anchor annotation.Point, style LevelStyle, global GlobalStyle, face font.Face) {
	if text == "" || !style.DrawText {
		return
	}

	text = truncateLabel(text)
	w, h, descent := measureText(face, text)
	x, y := clampAnchor(anchor.X, anchor.Y, w, h, dc.Width(), dc.Height())

	if global.TextBackground {
		bg := global.TextBackgroundColor
		dc.SetRGB255(int(bg.R), int(bg.G), int(bg.B))
		dc.DrawRectangle(
			float64(x-backgroundPad),
			float64(y-h-backgroundPad),
			float64(w+2*backgroundPad),
			float64(h+descent+2*backgroundPad),
		)
		dc.Fill()
	}

	color := style.Color
	if style.TextColor != nil {
		color = *style.TextColor
	}
	dc.SetFontFace(face)
	dc.SetRGB255(int(color.R), int(color.G), int(color.B))
	dc.DrawString(text, float64(x), float64(y))
}
