package annotation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Wire types for the vision service envelope. Field names match the JSON
// emitted by document text detection; everything is optional at every level.
type envelope struct {
	FileName string   `json:"file_name,omitempty"`
	Response response `json:"response"`
}

type response struct {
	FullTextAnnotation *fullTextAnnotation `json:"fullTextAnnotation,omitempty"`
}

type fullTextAnnotation struct {
	Pages []wirePage `json:"pages,omitempty"`
	Text  string     `json:"text,omitempty"`
}

type wirePage struct {
	Confidence float64     `json:"confidence,omitempty"`
	Blocks     []wireBlock `json:"blocks,omitempty"`
}

type wireBlock struct {
	BoundingBox *wireBoundingBox `json:"boundingBox,omitempty"`
	BlockType   string           `json:"blockType,omitempty"`
	Confidence  float64          `json:"confidence,omitempty"`
	Paragraphs  []wireParagraph  `json:"paragraphs,omitempty"`
}

type wireParagraph struct {
	BoundingBox *wireBoundingBox `json:"boundingBox,omitempty"`
	Confidence  float64          `json:"confidence,omitempty"`
	Words       []wireWord       `json:"words,omitempty"`
}

type wireWord struct {
	BoundingBox *wireBoundingBox `json:"boundingBox,omitempty"`
	Confidence  float64          `json:"confidence,omitempty"`
	Symbols     []wireSymbol     `json:"symbols,omitempty"`
}

type wireSymbol struct {
	BoundingBox *wireBoundingBox `json:"boundingBox,omitempty"`
	Confidence  float64          `json:"confidence,omitempty"`
	Text        string           `json:"text,omitempty"`
}

type wireBoundingBox struct {
	Vertices []wireVertex `json:"vertices,omitempty"`
}

// Vertex coordinates are decoded as floats to tolerate services that emit
// fractional pixels; missing coordinates default to 0.
type wireVertex struct {
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
}

// WriteJSON encodes a tree as the vision service envelope and writes it to w.
// The output round-trips through [ReadJSON]. fileName is recorded in the
// envelope's file_name field and may be empty.
func WriteJSON(t *Tree, fileName string, w io.Writer) error {
	env := envelope{FileName: fileName}

	if len(t.Pages) > 0 {
		fta := &fullTextAnnotation{
			Pages: make([]wirePage, len(t.Pages)),
			Text:  PlainText(t),
		}
		for i, p := range t.Pages {
			fta.Pages[i] = encodePage(p)
		}
		env.Response.FullTextAnnotation = fta
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a tree to a JSON label file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(t *Tree, fileName, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(t, fileName, f)
}

// PlainText reconstructs the document text from the tree: words joined by
// spaces, one line per paragraph.
func PlainText(t *Tree) string {
	var lines []string
	for _, p := range t.Pages {
		for _, b := range p.Blocks {
			for _, para := range b.Paragraphs {
				words := make([]string, 0, len(para.Words))
				for _, w := range para.Words {
					if txt := w.Text(); txt != "" {
						words = append(words, txt)
					}
				}
				if len(words) > 0 {
					lines = append(lines, strings.Join(words, " "))
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}

func encodePage(p Page) wirePage {
	out := wirePage{Confidence: p.Confidence}
	for _, b := range p.Blocks {
		out.Blocks = append(out.Blocks, wireBlock{
			BoundingBox: encodePolygon(b.Polygon),
			BlockType:   b.BlockType,
			Confidence:  b.Confidence,
			Paragraphs:  encodeParagraphs(b.Paragraphs),
		})
	}
	return out
}

func encodeParagraphs(paras []Paragraph) []wireParagraph {
	var out []wireParagraph
	for _, p := range paras {
		wp := wireParagraph{
			BoundingBox: encodePolygon(p.Polygon),
			Confidence:  p.Confidence,
		}
		for _, w := range p.Words {
			ww := wireWord{
				BoundingBox: encodePolygon(w.Polygon),
				Confidence:  w.Confidence,
			}
			for _, s := range w.Symbols {
				ww.Symbols = append(ww.Symbols, wireSymbol{
					BoundingBox: encodePolygon(s.Polygon),
					Confidence:  s.Confidence,
					Text:        s.Text,
				})
			}
			wp.Words = append(wp.Words, ww)
		}
		out = append(out, wp)
	}
	return out
}

func encodePolygon(p Polygon) *wireBoundingBox {
	if len(p) == 0 {
		return nil
	}
	bb := &wireBoundingBox{Vertices: make([]wireVertex, len(p))}
	for i, v := range p {
		bb.Vertices[i] = wireVertex{X: float64(v.X), Y: float64(v.Y)}
	}
	return bb
}
