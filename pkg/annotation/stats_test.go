package annotation

import (
	"math"
	"testing"
)

func sampleTree() *Tree {
	return &Tree{Pages: []Page{
		{
			Confidence: 0.9,
			Blocks: []Block{
				{
					Confidence: 0.7,
					Paragraphs: []Paragraph{
						{Words: []Word{
							{Symbols: []Symbol{{Text: "h"}, {Text: "i"}}},
							{Symbols: []Symbol{{Text: "y"}, {Text: "o"}}},
						}},
					},
				},
				{Confidence: 0.8},
			},
		},
	}}
}

func TestCollect(t *testing.T) {
	s := Collect(sampleTree())

	if s.Pages != 1 {
		t.Errorf("Pages = %d, want 1", s.Pages)
	}
	if s.Blocks != 2 {
		t.Errorf("Blocks = %d, want 2", s.Blocks)
	}
	if s.Paragraphs != 1 {
		t.Errorf("Paragraphs = %d, want 1", s.Paragraphs)
	}
	if s.Words != 2 {
		t.Errorf("Words = %d, want 2", s.Words)
	}
	if s.Symbols != 4 {
		t.Errorf("Symbols = %d, want 4", s.Symbols)
	}
	// "hi yo"
	if s.TextLength != 5 {
		t.Errorf("TextLength = %d, want 5", s.TextLength)
	}

	wantAvg := (0.9 + 0.7 + 0.8) / 3
	if math.Abs(s.AvgConfidence-wantAvg) > 1e-9 {
		t.Errorf("AvgConfidence = %v, want %v", s.AvgConfidence, wantAvg)
	}
	if s.MinConfidence != 0.7 {
		t.Errorf("MinConfidence = %v, want 0.7", s.MinConfidence)
	}
	if s.MaxConfidence != 0.9 {
		t.Errorf("MaxConfidence = %v, want 0.9", s.MaxConfidence)
	}
	if s.ConfidenceStdDev <= 0 {
		t.Errorf("ConfidenceStdDev = %v, want > 0", s.ConfidenceStdDev)
	}
}

func TestCollectEmptyTree(t *testing.T) {
	s := Collect(&Tree{})

	if s.Pages != 0 || s.Words != 0 || s.TextLength != 0 {
		t.Errorf("empty tree stats = %+v, want zeros", s)
	}
	if s.AvgConfidence != 0 || s.ConfidenceStdDev != 0 {
		t.Errorf("empty tree confidence stats = %+v, want zeros", s)
	}
}

func TestPlainText(t *testing.T) {
	tree := &Tree{Pages: []Page{{Blocks: []Block{{Paragraphs: []Paragraph{
		{Words: []Word{
			{Symbols: []Symbol{{Text: "o"}, {Text: "n"}, {Text: "e"}}},
			{Symbols: []Symbol{{Text: "t"}, {Text: "w"}, {Text: "o"}}},
		}},
		{Words: []Word{
			{Symbols: []Symbol{{Text: "t"}, {Text: "h"}, {Text: "r"}, {Text: "e"}, {Text: "e"}}},
		}},
	}}}}}}

	if got, want := PlainText(tree), "one two\nthree"; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestWordText(t *testing.T) {
	w := Word{Symbols: []Symbol{{Text: "a"}, {Text: ""}, {Text: "b"}}}
	if got, want := w.Text(), "ab"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	if got := (Word{}).Text(); got != "" {
		t.Errorf("empty word text = %q, want empty", got)
	}
}

func TestPolygonDrawable(t *testing.T) {
	tests := []struct {
		name     string
		poly     Polygon
		drawable bool
	}{
		{"nil", nil, false},
		{"three vertices", Polygon{{0, 0}, {1, 0}, {1, 1}}, false},
		{"four vertices", Polygon{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, true},
		{"five vertices", Polygon{{0, 0}, {2, 0}, {3, 1}, {2, 2}, {0, 2}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.Drawable(); got != tt.drawable {
				t.Errorf("Drawable() = %v, want %v", got, tt.drawable)
			}
		})
	}
}
