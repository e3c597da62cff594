package overlay

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// fallbackFont is the embedded Go Regular typeface, parsed once. It is the
// compiled-in default and always parses.
var fallbackFont = sync.OnceValue(func() *truetype.Font {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic("overlay: embedded fallback font is invalid: " + err.Error())
	}
	return f
})

// loadFont resolves a font selector against the system font directories.
// An empty name or any resolution failure falls back to the embedded face;
// font trouble must never fail a render.
func loadFont(name string) *truetype.Font {
	if name == "" {
		return fallbackFont()
	}
	path, err := findfont.Find(name)
	if err != nil {
		return fallbackFont()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fallbackFont()
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return fallbackFont()
	}
	return f
}

// faceCache hands out font faces for the label sizes used during one
// render call. The font itself is fixed by the global settings; faces are
// built lazily per size. Not safe for concurrent use; a cache belongs to
// exactly one render call.
type faceCache struct {
	font  *truetype.Font
	faces map[float64]font.Face
}

func newFaceCache(fontName string) *faceCache {
	return &faceCache{
		font:  loadFont(fontName),
		faces: make(map[float64]font.Face),
	}
}

// face returns a face at the given size, using [DefaultTextSize] when the
// size is unset.
func (fc *faceCache) face(size float64) font.Face {
	if size <= 0 {
		size = DefaultTextSize
	}
	if f, ok := fc.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(fc.font, &truetype.Options{Size: size})
	fc.faces[size] = f
	return f
}
