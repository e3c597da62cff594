package ocr

import (
	"image"
	"math"
	"testing"

	"github.com/MalchuL/vision-ocr-dumper/pkg/annotation"
)

func box(block, par int, text string, conf float64, r image.Rectangle) wordBox {
	return wordBox{Block: block, Par: par, Text: text, Confidence: conf, Rect: r}
}

func TestAssembleEmpty(t *testing.T) {
	tree := assemble(nil)
	if len(tree.Pages) != 0 {
		t.Errorf("empty input produced %d pages, want 0", len(tree.Pages))
	}
}

func TestAssembleGrouping(t *testing.T) {
	boxes := []wordBox{
		box(1, 1, "hello", 0.9, image.Rect(10, 10, 50, 20)),
		box(1, 1, "world", 0.8, image.Rect(55, 10, 95, 20)),
		box(1, 2, "again", 0.7, image.Rect(10, 30, 50, 40)),
		box(2, 1, "footer", 0.6, image.Rect(10, 100, 60, 110)),
	}

	tree := assemble(boxes)
	if len(tree.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(tree.Pages))
	}
	page := tree.Pages[0]
	if len(page.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(page.Blocks))
	}

	first := page.Blocks[0]
	if len(first.Paragraphs) != 2 {
		t.Fatalf("first block has %d paragraphs, want 2", len(first.Paragraphs))
	}
	if got := len(first.Paragraphs[0].Words); got != 2 {
		t.Errorf("first paragraph has %d words, want 2", got)
	}
	if first.BlockType != "TEXT" {
		t.Errorf("block type = %q, want TEXT", first.BlockType)
	}

	second := page.Blocks[1]
	if len(second.Paragraphs) != 1 || len(second.Paragraphs[0].Words) != 1 {
		t.Errorf("second block shape = %d paragraphs, want 1 with 1 word", len(second.Paragraphs))
	}
	if got := second.Paragraphs[0].Words[0].Text(); got != "footer" {
		t.Errorf("second block word = %q, want footer", got)
	}
}

func TestAssembleConfidenceAggregation(t *testing.T) {
	boxes := []wordBox{
		box(1, 1, "a", 0.9, image.Rect(0, 0, 10, 10)),
		box(1, 1, "b", 0.7, image.Rect(10, 0, 20, 10)),
		box(1, 2, "c", 0.5, image.Rect(0, 20, 10, 30)),
	}

	tree := assemble(boxes)
	block := tree.Pages[0].Blocks[0]

	approx := func(got, want float64) bool { return math.Abs(got-want) < 1e-9 }

	if !approx(block.Paragraphs[0].Confidence, 0.8) {
		t.Errorf("first paragraph confidence = %v, want 0.8", block.Paragraphs[0].Confidence)
	}
	if !approx(block.Paragraphs[1].Confidence, 0.5) {
		t.Errorf("second paragraph confidence = %v, want 0.5", block.Paragraphs[1].Confidence)
	}
	if !approx(block.Confidence, 0.65) {
		t.Errorf("block confidence = %v, want 0.65", block.Confidence)
	}
	if !approx(tree.Pages[0].Confidence, 0.65) {
		t.Errorf("page confidence = %v, want 0.65", tree.Pages[0].Confidence)
	}
}

func TestAssemblePolygons(t *testing.T) {
	boxes := []wordBox{
		box(1, 1, "a", 0.9, image.Rect(10, 10, 50, 20)),
		box(1, 1, "b", 0.9, image.Rect(60, 5, 100, 25)),
	}

	tree := assemble(boxes)
	block := tree.Pages[0].Blocks[0]

	wantWord := annotation.Polygon{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 20}, {X: 10, Y: 20}}
	if got := block.Paragraphs[0].Words[0].Polygon; !polygonEqual(got, wantWord) {
		t.Errorf("word polygon = %v, want %v", got, wantWord)
	}

	// Paragraph and block cover the union of their words.
	wantUnion := annotation.Polygon{{X: 10, Y: 5}, {X: 100, Y: 5}, {X: 100, Y: 25}, {X: 10, Y: 25}}
	if got := block.Paragraphs[0].Polygon; !polygonEqual(got, wantUnion) {
		t.Errorf("paragraph polygon = %v, want %v", got, wantUnion)
	}
	if got := block.Polygon; !polygonEqual(got, wantUnion) {
		t.Errorf("block polygon = %v, want %v", got, wantUnion)
	}
	if !block.Polygon.Drawable() {
		t.Error("block polygon should be drawable")
	}
}

func TestAssembleSymbols(t *testing.T) {
	tree := assemble([]wordBox{box(1, 1, "héllo", 0.75, image.Rect(0, 0, 40, 10))})
	word := tree.Pages[0].Blocks[0].Paragraphs[0].Words[0]

	if len(word.Symbols) != 5 {
		t.Fatalf("got %d symbols, want 5 (one per rune)", len(word.Symbols))
	}
	if word.Symbols[1].Text != "é" {
		t.Errorf("symbol[1] = %q, want é", word.Symbols[1].Text)
	}
	for i, s := range word.Symbols {
		if s.Confidence != 0.75 {
			t.Errorf("symbol[%d] confidence = %v, want the word's 0.75", i, s.Confidence)
		}
		if len(s.Polygon) != 0 {
			t.Errorf("symbol[%d] has a polygon; the engine reports word geometry only", i)
		}
	}
	if got := word.Text(); got != "héllo" {
		t.Errorf("word text = %q, want héllo", got)
	}
}

func polygonEqual(a, b annotation.Polygon) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
