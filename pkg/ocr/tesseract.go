package ocr

import (
	"context"
	"os"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/MalchuL/vision-ocr-dumper/pkg/annotation"
	"github.com/MalchuL/vision-ocr-dumper/pkg/errors"
	"github.com/MalchuL/vision-ocr-dumper/pkg/observability"
)

// Tesseract recognizes text with a local Tesseract engine. It holds one
// gosseract client for its lifetime and is not safe for concurrent use.
type Tesseract struct {
	client *gosseract.Client
}

var _ Recognizer = (*Tesseract)(nil)

// NewTesseract creates a Tesseract-backed recognizer. Languages are
// Tesseract language codes such as "eng" or "deu"; none means the engine
// default. Close the recognizer when done.
func NewTesseract(languages ...string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			client.Close()
			return nil, errors.Wrap(errors.ErrCodeOCR, err, "set languages %v", languages)
		}
	}
	return &Tesseract{client: client}, nil
}

// Recognize runs Tesseract on the image at imagePath and assembles the
// word boxes into an annotation tree. Word confidences are normalized
// from the engine's percent scale to [0, 1].
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (*annotation.Tree, error) {
	start := time.Now()
	var size int
	if fi, err := os.Stat(imagePath); err == nil {
		size = int(fi.Size())
	}
	observability.OCR().OnRecognizeStart(ctx, imagePath, size)

	tree, words, err := t.recognize(ctx, imagePath)
	observability.OCR().OnRecognizeComplete(ctx, imagePath, words, time.Since(start), err)
	return tree, err
}

func (t *Tesseract) recognize(ctx context.Context, imagePath string) (*annotation.Tree, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	if err := t.client.SetImage(imagePath); err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeOCR, err, "set image %s", imagePath)
	}
	raw, err := t.client.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeOCR, err, "recognize %s", imagePath)
	}

	boxes := make([]wordBox, 0, len(raw))
	for _, b := range raw {
		boxes = append(boxes, wordBox{
			Block:      b.BlockNum,
			Par:        b.ParNum,
			Text:       b.Word,
			Confidence: b.Confidence / 100,
			Rect:       b.Box,
		})
	}
	return assemble(boxes), len(boxes), nil
}

// Close releases the underlying engine.
func (t *Tesseract) Close() error {
	return t.client.Close()
}
