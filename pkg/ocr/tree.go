package ocr

import (
	"image"

	"github.com/MalchuL/vision-ocr-dumper/pkg/annotation"
)

// wordBox is one recognized word with its layout position. Block and Par
// are the engine's layout indices; Confidence is normalized to [0, 1].
type wordBox struct {
	Block      int
	Par        int
	Text       string
	Confidence float64
	Rect       image.Rectangle
}

// assemble groups recognized words into an annotation tree: words sharing
// a block index form a block, words sharing a paragraph index within it
// form a paragraph. Boxes are expected in reading order; a change of
// index starts a new group. Confidence aggregates upward as the mean of
// the children. No words means a tree with no pages.
func assemble(boxes []wordBox) *annotation.Tree {
	if len(boxes) == 0 {
		return &annotation.Tree{}
	}

	var blocks []annotation.Block
	i := 0
	for i < len(boxes) {
		blockIdx := boxes[i].Block
		var paragraphs []annotation.Paragraph

		for i < len(boxes) && boxes[i].Block == blockIdx {
			parIdx := boxes[i].Par
			var words []annotation.Word
			for i < len(boxes) && boxes[i].Block == blockIdx && boxes[i].Par == parIdx {
				words = append(words, makeWord(boxes[i]))
				i++
			}
			paragraphs = append(paragraphs, annotation.Paragraph{
				Polygon:    unionPolygon(words),
				Confidence: meanWordConfidence(words),
				Words:      words,
			})
		}

		var sum float64
		for _, p := range paragraphs {
			sum += p.Confidence
		}
		var poly annotation.Polygon
		for _, p := range paragraphs {
			poly = unionWith(poly, p.Polygon)
		}
		blocks = append(blocks, annotation.Block{
			Polygon:    poly,
			BlockType:  "TEXT",
			Confidence: sum / float64(len(paragraphs)),
			Paragraphs: paragraphs,
		})
	}

	var sum float64
	for _, b := range blocks {
		sum += b.Confidence
	}
	return &annotation.Tree{Pages: []annotation.Page{{
		Confidence: sum / float64(len(blocks)),
		Blocks:     blocks,
	}}}
}

// makeWord converts a recognized box into a word. The engine reports
// word-level confidence only, so each symbol carries the word's
// confidence and no polygon of its own.
func makeWord(b wordBox) annotation.Word {
	w := annotation.Word{
		Polygon:    rectPolygon(b.Rect),
		Confidence: b.Confidence,
	}
	for _, r := range b.Text {
		w.Symbols = append(w.Symbols, annotation.Symbol{
			Confidence: b.Confidence,
			Text:       string(r),
		})
	}
	return w
}

func rectPolygon(r image.Rectangle) annotation.Polygon {
	return annotation.Polygon{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// unionPolygon returns the axis-aligned bounding polygon covering all
// word polygons.
func unionPolygon(words []annotation.Word) annotation.Polygon {
	var poly annotation.Polygon
	for _, w := range words {
		poly = unionWith(poly, w.Polygon)
	}
	return poly
}

// unionWith merges two rectangular polygons into their bounding polygon.
// Either polygon may be nil.
func unionWith(a, b annotation.Polygon) annotation.Polygon {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	return rectPolygon(polygonRect(a).Union(polygonRect(b)))
}

func polygonRect(p annotation.Polygon) image.Rectangle {
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := p[0].X, p[0].Y
	for _, v := range p[1:] {
		minX, maxX = min(minX, v.X), max(maxX, v.X)
		minY, maxY = min(minY, v.Y), max(maxY, v.Y)
	}
	return image.Rect(minX, minY, maxX, maxY)
}

func meanWordConfidence(words []annotation.Word) float64 {
	if len(words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range words {
		sum += w.Confidence
	}
	return sum / float64(len(words))
}
