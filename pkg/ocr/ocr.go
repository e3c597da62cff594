// Package ocr recognizes text in images and produces annotation trees.
//
// The package wraps the Tesseract engine via gosseract and requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"context"

	"github.com/MalchuL/vision-ocr-dumper/pkg/annotation"
)

// Recognizer turns an image file into an annotation tree.
type Recognizer interface {
	// Recognize runs text recognition on the image at imagePath.
	// A blank image yields a tree with no pages, not an error.
	Recognize(ctx context.Context, imagePath string) (*annotation.Tree, error)

	// Close releases engine resources. The Recognizer is unusable
	// afterwards.
	Close() error
}
