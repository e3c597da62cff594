// Package annotation models hierarchical OCR results as a typed tree.
//
// A [Tree] holds the page → block → paragraph → word → symbol hierarchy
// produced by a document text detection service. Every node carries a
// bounding [Polygon] and a confidence score in [0, 1]. Trees are built once
// from the service's JSON envelope (see [ReadJSON]) and are immutable after
// construction; the renderer that consumes a tree owns it for the duration
// of the call.
package annotation

// Point is an integer pixel coordinate.
type Point struct {
	X int
	Y int
}

// Polygon is an ordered vertex sequence forming a closed boundary.
// Vertex order is as produced by the OCR service; the polygon is not
// guaranteed convex or axis-aligned.
type Polygon []Point

// Drawable reports whether the polygon has enough vertices to be stroked.
// Polygons with fewer than 4 vertices are retained in the tree but must be
// skipped by drawing code, never treated as an error.
func (p Polygon) Drawable() bool {
	return len(p) >= 4
}

// Tree is the root of the annotation hierarchy for one image.
type Tree struct {
	Pages []Page
}

// Page is the top level of the hierarchy. It carries no explicit polygon;
// its boundary is implicitly the full image.
type Page struct {
	Confidence float64
	Blocks     []Block
}

// Block is a detected layout region, typically of type "TEXT".
type Block struct {
	Polygon    Polygon
	BlockType  string
	Confidence float64
	Paragraphs []Paragraph
}

// Paragraph is a group of words within a block.
type Paragraph struct {
	Polygon    Polygon
	Confidence float64
	Words      []Word
}

// Word is a group of symbols within a paragraph.
type Word struct {
	Polygon    Polygon
	Confidence float64
	Symbols    []Symbol
}

// Symbol is a single recognized character.
type Symbol struct {
	Polygon    Polygon
	Confidence float64
	Text       string
}

// Text reconstructs the word's display text by concatenating each symbol's
// text in child order.
func (w Word) Text() string {
	var out []byte
	for _, s := range w.Symbols {
		out = append(out, s.Text...)
	}
	return string(out)
}
