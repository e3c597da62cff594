package cli

import (
	"path/filepath"
	"testing"
)

func TestCountImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, "b.TIF"))
	touch(t, filepath.Join(dir, "readme.md"))
	touch(t, filepath.Join(dir, "sub", "c.png"))

	// Extension match is case-insensitive; subdirectories are not entered.
	got, err := countImages(dir)
	if err != nil {
		t.Fatalf("countImages() error = %v", err)
	}
	if got != 2 {
		t.Errorf("countImages() = %d, want 2", got)
	}
}

func TestListLabels(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.json"))
	touch(t, filepath.Join(dir, "b.json"))
	touch(t, filepath.Join(dir, "c.png"))

	got, err := listLabels(dir)
	if err != nil {
		t.Fatalf("listLabels() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("listLabels() found %d files, want 2: %v", len(got), got)
	}
}
