package annotation

import (
	"encoding/json"
	"io"
	"os"

	"github.com/MalchuL/vision-ocr-dumper/pkg/errors"
)

// ReadJSON decodes a vision service envelope from r into a Tree.
//
// The input is the nested structure emitted by document text detection:
//
//	{
//	  "file_name": "scan.png",
//	  "response": {
//	    "fullTextAnnotation": {
//	      "pages": [{"confidence": 0.97, "blocks": [...]}]
//	    }
//	  }
//	}
//
// Every field is optional at every level. Vertices lacking a numeric x or y
// get 0; polygons with fewer than 4 vertices are retained but marked
// non-drawable; an absent confidence is 0.
//
// ReadJSON returns an error with code [errors.ErrCodeInvalidAnnotation] if
// the JSON is malformed, and [errors.ErrCodeNoContent] if the envelope has
// no fullTextAnnotation or no pages. Callers must treat NO_CONTENT as
// "nothing to draw", not as a failure.
func ReadJSON(r io.Reader) (*Tree, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAnnotation, err, "decode annotation")
	}

	fta := env.Response.FullTextAnnotation
	if fta == nil {
		return nil, errors.New(errors.ErrCodeNoContent, "no fullTextAnnotation in response")
	}
	if len(fta.Pages) == 0 {
		return nil, errors.New(errors.ErrCodeNoContent, "no pages in fullTextAnnotation")
	}

	t := &Tree{Pages: make([]Page, len(fta.Pages))}
	for i, p := range fta.Pages {
		t.Pages[i] = decodePage(p)
	}
	return t, nil
}

// ImportJSON reads a JSON label file at path and returns the decoded tree.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Open failures are distinguishable from content errors by code.
func ImportJSON(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

func decodePage(p wirePage) Page {
	out := Page{Confidence: p.Confidence}
	for _, b := range p.Blocks {
		out.Blocks = append(out.Blocks, Block{
			Polygon:    decodePolygon(b.BoundingBox),
			BlockType:  b.BlockType,
			Confidence: b.Confidence,
			Paragraphs: decodeParagraphs(b.Paragraphs),
		})
	}
	return out
}

func decodeParagraphs(paras []wireParagraph) []Paragraph {
	var out []Paragraph
	for _, p := range paras {
		para := Paragraph{
			Polygon:    decodePolygon(p.BoundingBox),
			Confidence: p.Confidence,
		}
		for _, w := range p.Words {
			word := Word{
				Polygon:    decodePolygon(w.BoundingBox),
				Confidence: w.Confidence,
			}
			for _, s := range w.Symbols {
				word.Symbols = append(word.Symbols, Symbol{
					Polygon:    decodePolygon(s.BoundingBox),
					Confidence: s.Confidence,
					Text:       s.Text,
				})
			}
			para.Words = append(para.Words, word)
		}
		out = append(out, para)
	}
	return out
}

func decodePolygon(bb *wireBoundingBox) Polygon {
	if bb == nil {
		return nil
	}
	poly := make(Polygon, len(bb.Vertices))
	for i, v := range bb.Vertices {
		poly[i] = Point{X: int(v.X), Y: int(v.Y)}
	}
	return poly
}
