// Package overlay renders hierarchical OCR annotations onto raster images.
//
// The renderer walks an [annotation.Tree] one level at a time and strokes
// bounding polygons and optional labels onto a copy of the source image.
// Layer order is fixed so later levels sit visually on top of earlier
// ones: page, block, paragraph, word, character. Each level is gated by
// its own style record in [Config]; word and character drawing is
// additionally gated by the global confidence threshold, while structural
// levels always draw when enabled.
//
// Rendering is deterministic: the same image, tree, and settings always
// produce byte-identical output.
package overlay

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/fogleman/gg"

	"github.com/MalchuL/vision-ocr-dumper/pkg/annotation"
)

// Label anchor for the page level, a fixed offset from the top-left
// corner independent of geometry.
const (
	pageLabelX = 10
	pageLabelY = 30
)

// Render draws tree annotations onto a copy of src according to cfg and
// returns the annotated surface. src is never modified. The surface is
// owned by the caller and is typically encoded to a file right after.
func Render(src image.Image, tree *annotation.Tree, cfg Config) *image.RGBA {
	bounds := src.Bounds()
	surface := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(surface, surface.Bounds(), src, bounds.Min, draw.Src)

	dc := gg.NewContextForRGBA(surface)
	faces := newFaceCache(cfg.Global.Font)

	for _, page := range tree.Pages {
		// Fixed layer order; a disabled level's pass is elided entirely.
		if cfg.Page.Draw {
			drawPageLevel(dc, page, cfg.Page, cfg.Global, faces)
		}
		if cfg.Block.Draw {
			drawBlockLevel(dc, page.Blocks, cfg.Block, cfg.Global, faces)
		}
		if cfg.Paragraph.Draw {
			drawParagraphLevel(dc, page.Blocks, cfg.Paragraph, cfg.Global, faces)
		}
		if cfg.Word.Draw {
			drawWordLevel(dc, page.Blocks, cfg.Word, cfg.Global, faces)
		}
		if cfg.Character.Draw {
			drawCharacterLevel(dc, page.Blocks, cfg.Character, cfg.Global, faces)
		}
	}

	return surface
}

// strokePolygon draws a closed outline along the polygon vertices.
// Polygons with fewer than 4 vertices are silently skipped.
func strokePolygon(dc *gg.Context, poly annotation.Polygon, color RGB, thickness int) {
	if !poly.Drawable() {
		return
	}
	if thickness < 1 {
		thickness = 1
	}

	dc.NewSubPath()
	dc.MoveTo(float64(poly[0].X), float64(poly[0].Y))
	for _, v := range poly[1:] {
		dc.LineTo(float64(v.X), float64(v.Y))
	}
	dc.ClosePath()

	dc.SetRGB255(int(color.R), int(color.G), int(color.B))
	dc.SetLineWidth(float64(thickness))
	dc.Stroke()
}

// confLabel formats a level label with its confidence suffix. The suffix
// is dropped when show_confidence is disabled.
func confLabel(prefix string, confidence float64, show bool) string {
	if !show {
		return prefix
	}
	return fmt.Sprintf("%s (conf: %.2f)", prefix, confidence)
}

// drawPageLevel strokes the page boundary and label. The page polygon is
// synthesized from the surface corners, not read from the input.
func drawPageLevel(dc *gg.Context, page annotation.Page, style LevelStyle, global GlobalStyle, faces *faceCache) {
	w, h := dc.Width(), dc.Height()
	boundary := annotation.Polygon{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	strokePolygon(dc, boundary, style.Color, style.Thickness)

	label := confLabel("Page", page.Confidence, global.ShowConfidence)
	drawLabel(dc, label, annotation.Point{X: pageLabelX, Y: pageLabelY}, style, global, faces.face(style.TextSize))
}

// drawBlockLevel strokes each block's polygon and label. Blocks draw
// regardless of confidence; the threshold applies to leaf levels only.
func drawBlockLevel(dc *gg.Context, blocks []annotation.Block, style LevelStyle, global GlobalStyle, faces *faceCache) {
	for _, b := range blocks {
		if len(b.Polygon) == 0 {
			continue
		}
		strokePolygon(dc, b.Polygon, style.Color, style.Thickness)

		blockType := b.BlockType
		if blockType == "" {
			blockType = "UNKNOWN"
		}
		label := confLabel(blockType, b.Confidence, global.ShowConfidence)
		drawLabel(dc, label, b.Polygon[0], style, global, faces.face(style.TextSize))
	}
}

func drawParagraphLevel(dc *gg.Context, blocks []annotation.Block, style LevelStyle, global GlobalStyle, faces *faceCache) {
	for _, b := range blocks {
		for _, p := range b.Paragraphs {
			if len(p.Polygon) == 0 {
				continue
			}
			strokePolygon(dc, p.Polygon, style.Color, style.Thickness)

			label := confLabel("Para", p.Confidence, global.ShowConfidence)
			drawLabel(dc, label, p.Polygon[0], style, global, faces.face(style.TextSize))
		}
	}
}

// drawWordLevel strokes word polygons and labels. Words below the global
// confidence threshold are skipped entirely, box and label both, before
// any drawing.
func drawWordLevel(dc *gg.Context, blocks []annotation.Block, style LevelStyle, global GlobalStyle, faces *faceCache) {
	for _, b := range blocks {
		for _, p := range b.Paragraphs {
			for _, w := range p.Words {
				if len(w.Polygon) == 0 {
					continue
				}
				if w.Confidence < global.ConfidenceThreshold {
					continue
				}
				strokePolygon(dc, w.Polygon, style.Color, style.Thickness)
				drawLabel(dc, w.Text(), w.Polygon[0], style, global, faces.face(style.TextSize))
			}
		}
	}
}

// drawCharacterLevel strokes symbol polygons and labels, applying the
// same confidence filter as words.
func drawCharacterLevel(dc *gg.Context, blocks []annotation.Block, style LevelStyle, global GlobalStyle, faces *faceCache) {
	for _, b := range blocks {
		for _, p := range b.Paragraphs {
			for _, w := range p.Words {
				for _, s := range w.Symbols {
					if len(s.Polygon) == 0 {
						continue
					}
					if s.Confidence < global.ConfidenceThreshold {
						continue
					}
					strokePolygon(dc, s.Polygon, style.Color, style.Thickness)
					drawLabel(dc, s.Text, s.Polygon[0], style, global, faces.face(style.TextSize))
				}
			}
		}
	}
}
