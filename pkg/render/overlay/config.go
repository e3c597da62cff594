package overlay

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/MalchuL/vision-ocr-dumper/pkg/errors"
)

// Level identifies one tier of the annotation hierarchy.
type Level int

const (
	LevelPage Level = iota
	LevelBlock
	LevelParagraph
	LevelWord
	LevelCharacter
)

// Levels lists all levels in draw order. Later levels sit visually on top
// of earlier ones.
var Levels = []Level{LevelPage, LevelBlock, LevelParagraph, LevelWord, LevelCharacter}

func (l Level) String() string {
	switch l {
	case LevelPage:
		return "page"
	case LevelBlock:
		return "block"
	case LevelParagraph:
		return "paragraph"
	case LevelWord:
		return "word"
	case LevelCharacter:
		return "character"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// RGB is a color in the draw settings document, written as [r, g, b].
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// UnmarshalTOML decodes a [r, g, b] array into an RGB color.
func (c *RGB) UnmarshalTOML(v any) error {
	arr, ok := v.([]any)
	if !ok || len(arr) != 3 {
		return fmt.Errorf("color must be a [r, g, b] array, got %v", v)
	}
	out := [3]uint8{}
	for i, e := range arr {
		var n int64
		switch x := e.(type) {
		case int64:
			n = x
		case float64:
			n = int64(x)
		default:
			return fmt.Errorf("color component %d is not a number: %v", i, e)
		}
		if n < 0 || n > 255 {
			return fmt.Errorf("color component %d out of range: %d", i, n)
		}
		out[i] = uint8(n)
	}
	c.R, c.G, c.B = out[0], out[1], out[2]
	return nil
}

// LevelStyle controls how one level of the hierarchy is drawn.
type LevelStyle struct {
	Draw      bool    `toml:"draw"`      // draw this level at all
	Color     RGB     `toml:"color"`     // outline color
	Thickness int     `toml:"thickness"` // outline thickness in pixels, min 1
	DrawText  bool    `toml:"draw_text"` // draw the level's label
	TextColor *RGB    `toml:"text_color"` // label color; nil falls back to Color
	TextSize  float64 `toml:"text_size"`  // font size in points; 0 uses the default
}

// GlobalStyle holds settings shared across all levels.
type GlobalStyle struct {
	OutputDir           string  `toml:"output_dir"`
	OutputFormat        string  `toml:"output_format"`
	Font                string  `toml:"font"` // font name resolved against system fonts; empty uses the embedded fallback
	ShowConfidence      bool    `toml:"show_confidence"`
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	TextBackground      bool    `toml:"text_background"`
	TextBackgroundColor RGB     `toml:"text_background_color"`
}

// Config is the complete draw settings document: one style record per
// level plus the global record. A Config is immutable for the duration of
// a render call; drawing helpers receive their resolved level style and
// global values as explicit parameters.
type Config struct {
	Page      LevelStyle  `toml:"page"`
	Block     LevelStyle  `toml:"block"`
	Paragraph LevelStyle  `toml:"paragraph"`
	Word      LevelStyle  `toml:"word"`
	Character LevelStyle  `toml:"character"`
	Global    GlobalStyle `toml:"global"`
}

// Level returns the style record for the given level.
func (c *Config) Level(l Level) LevelStyle {
	switch l {
	case LevelPage:
		return c.Page
	case LevelBlock:
		return c.Block
	case LevelParagraph:
		return c.Paragraph
	case LevelWord:
		return c.Word
	case LevelCharacter:
		return c.Character
	}
	return LevelStyle{}
}

// DefaultTextSize is the label font size used when a level does not set one.
const DefaultTextSize = 12

// Default returns the built-in draw settings.
func Default() Config {
	return Config{
		Page:      LevelStyle{Draw: true, Color: RGB{255, 0, 0}, Thickness: 3, DrawText: true},
		Block:     LevelStyle{Draw: true, Color: RGB{0, 255, 0}, Thickness: 2, DrawText: true},
		Paragraph: LevelStyle{Draw: true, Color: RGB{0, 0, 255}, Thickness: 2, DrawText: false},
		Word:      LevelStyle{Draw: true, Color: RGB{255, 255, 0}, Thickness: 1, DrawText: true},
		Character: LevelStyle{Draw: false, Color: RGB{255, 0, 255}, Thickness: 1, DrawText: false},
		Global: GlobalStyle{
			OutputDir:           "./visualizations",
			OutputFormat:        "png",
			ShowConfidence:      true,
			ConfidenceThreshold: 0.5,
			TextBackground:      true,
			TextBackgroundColor: RGB{255, 255, 255},
		},
	}
}

// Load reads a TOML draw settings file at path.
//
// The document is decoded on top of [Default], so missing keys fall back to
// the built-in defaults per key, not per document. The returned error
// carries [errors.ErrCodeConfigLoad]; callers are expected to warn and use
// [Default] rather than fail.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeConfigLoad, err, "load draw settings from %s", path)
	}
	if err := errors.ValidateOutputFormat(cfg.Global.OutputFormat); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeConfigLoad, err, "draw settings %s", path)
	}
	return cfg, nil
}

// LoadOrDefault loads draw settings from path, falling back to the built-in
// defaults with a warning when path is empty or the file cannot be loaded.
// Load failure is never fatal.
func LoadOrDefault(path string, logger *log.Logger) Config {
	if logger == nil {
		logger = log.Default()
	}
	if path == "" {
		return Default()
	}
	cfg, err := Load(path)
	if err != nil {
		logger.Warnf("Could not load draw settings: %v; using defaults", errors.UserMessage(err))
		return Default()
	}
	logger.Debugf("Loaded draw settings from %s", path)
	return cfg
}
