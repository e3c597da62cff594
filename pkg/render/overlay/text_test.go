package overlay

import "testing"

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short", "hello", "hello"},
		{"empty", "", ""},
		{"exactly at limit", "12345678901234567890", "12345678901234567890"},
		{"one over limit", "123456789012345678901", "12345678901234567..."},
		{"long", "this sentence is far too long for a label", "this sentence is ..."},
		{"multibyte runes", "ééééééééééééééééééééé", "ééééééééééééééééé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateLabel(tt.text)
			if got != tt.want {
				t.Errorf("truncateLabel(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if n := len([]rune(got)); n > maxLabelLen {
				t.Errorf("truncated label has %d runes, want <= %d", n, maxLabelLen)
			}
		})
	}
}

func TestClampAnchor(t *testing.T) {
	const (
		surfW = 640
		surfH = 480
		textW = 50
		textH = 12
	)

	tests := []struct {
		name         string
		x, y         int
		wantX, wantY int
	}{
		{"in bounds", 100, 100, 100, 100},
		{"left overflow", -5, 100, 0, 100},
		{"top overflow", 100, 2, 100, textH + bottomMargin},
		{"right overflow", 600, 100, surfW - textW, 100},
		{"bottom overflow", 100, 500, 100, surfH - bottomMargin},
		{"left and top", -5, 2, 0, textH + bottomMargin},
		{"baseline exactly at text height", 100, textH, 100, textH},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := clampAnchor(tt.x, tt.y, textW, textH, surfW, surfH)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("clampAnchor(%d, %d) = (%d, %d), want (%d, %d)",
					tt.x, tt.y, gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestMeasureText(t *testing.T) {
	fc := newFaceCache("")
	face := fc.face(DefaultTextSize)

	w, h, descent := measureText(face, "Word (conf: 0.95)")
	if w <= 0 || h <= 0 || descent <= 0 {
		t.Errorf("measureText footprint = (%d, %d, %d), want all positive", w, h, descent)
	}

	wide, _, _ := measureText(face, "a much longer string than before")
	if wide <= w {
		t.Errorf("longer text measured %d wide, want > %d", wide, w)
	}
}

func TestFaceCacheReusesFaces(t *testing.T) {
	fc := newFaceCache("")
	a := fc.face(14)
	b := fc.face(14)
	if a != b {
		t.Error("same size should return the cached face")
	}
	if fc.face(0) != fc.face(DefaultTextSize) {
		t.Error("unset size should map to the default size face")
	}
}

func TestLoadFontFallback(t *testing.T) {
	// Unresolvable names never fail; they fall back to the embedded face.
	if loadFont("definitely-not-a-real-font-name") == nil {
		t.Fatal("loadFont returned nil for an unknown font")
	}
	if loadFont("") != fallbackFont() {
		t.Error("empty name should use the embedded fallback")
	}
}
