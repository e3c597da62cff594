package overlay

import (
	"context"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/MalchuL/vision-ocr-dumper/pkg/annotation"
	"github.com/MalchuL/vision-ocr-dumper/pkg/errors"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	cfg := Default()
	cfg.Global.OutputDir = filepath.Join(t.TempDir(), "visualizations")
	return NewRunner(cfg, log.New(io.Discard))
}

func sampleTree() *annotation.Tree {
	return &annotation.Tree{Pages: []annotation.Page{{
		Confidence: 0.95,
		Blocks: []annotation.Block{{
			Polygon:    quad(5, 5, 30, 20),
			BlockType:  "TEXT",
			Confidence: 0.9,
		}},
	}}}
}

func writeTestImage(t *testing.T, path string) {
	t.Helper()
	if err := imaging.Save(imaging.New(40, 40, color.NRGBA{255, 255, 255, 255}), path); err != nil {
		t.Fatal(err)
	}
}

func writeTestLabel(t *testing.T, path string, tree *annotation.Tree) {
	t.Helper()
	if err := annotation.ExportJSON(tree, filepath.Base(path), path); err != nil {
		t.Fatal(err)
	}
}

func TestOutputPath(t *testing.T) {
	r := NewRunner(Default(), log.New(io.Discard))

	got := r.OutputPath("/data/images/scan.jpeg", "/tmp/out")
	want := filepath.Join("/tmp/out", "scan_visualized.png")
	if got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}

	// Empty dir falls back to the configured output directory.
	got = r.OutputPath("scan.png", "")
	want = filepath.Join("./visualizations", "scan_visualized.png")
	if got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}

func TestRenderFile(t *testing.T) {
	r := testRunner(t)
	dir := t.TempDir()

	imagePath := filepath.Join(dir, "doc.png")
	labelPath := filepath.Join(dir, "doc.json")
	writeTestImage(t, imagePath)
	writeTestLabel(t, labelPath, sampleTree())

	out, err := r.RenderFile(context.Background(), imagePath, labelPath, "")
	if err != nil {
		t.Fatalf("RenderFile() error = %v", err)
	}

	want := filepath.Join(r.Config.Global.OutputDir, "doc_visualized.png")
	if out != want {
		t.Errorf("output path = %q, want %q", out, want)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file not written: %v", err)
	}
}

func TestRenderFileMissingImage(t *testing.T) {
	r := testRunner(t)
	dir := t.TempDir()

	labelPath := filepath.Join(dir, "doc.json")
	writeTestLabel(t, labelPath, sampleTree())

	_, err := r.RenderFile(context.Background(), filepath.Join(dir, "missing.png"), labelPath, "")
	if !errors.Is(err, errors.ErrCodeImageLoad) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeImageLoad)
	}
}

func TestRenderFileNoContent(t *testing.T) {
	r := testRunner(t)
	dir := t.TempDir()

	imagePath := filepath.Join(dir, "doc.png")
	labelPath := filepath.Join(dir, "doc.json")
	writeTestImage(t, imagePath)
	if err := os.WriteFile(labelPath, []byte(`{"response": {}}`), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := r.RenderFile(context.Background(), imagePath, labelPath, "")
	if err != nil {
		t.Fatalf("RenderFile() error = %v", err)
	}
	if out != imagePath {
		t.Errorf("no-content render returned %q, want the source path %q", out, imagePath)
	}
	if _, err := os.Stat(filepath.Join(r.Config.Global.OutputDir, "doc_visualized.png")); !os.IsNotExist(err) {
		t.Error("no-content render should not write an output file")
	}
}

func TestRenderFolder(t *testing.T) {
	r := testRunner(t)
	imagesDir := filepath.Join(t.TempDir(), "images")
	labelsDir := filepath.Join(t.TempDir(), "labels")
	for _, d := range []string{imagesDir, labelsDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	// Three images, labels for only two of them. Unrelated files in the
	// images directory are ignored.
	for _, name := range []string{"a.png", "b.jpg", "c.png"} {
		writeTestImage(t, filepath.Join(imagesDir, name))
	}
	if err := os.WriteFile(filepath.Join(imagesDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	writeTestLabel(t, filepath.Join(labelsDir, "a.json"), sampleTree())
	writeTestLabel(t, filepath.Join(labelsDir, "c.json"), sampleTree())

	outDir := filepath.Join(t.TempDir(), "out")
	written, err := r.RenderFolder(context.Background(), imagesDir, labelsDir, outDir)
	if err != nil {
		t.Fatalf("RenderFolder() error = %v", err)
	}

	want := []string{
		filepath.Join(outDir, "a_visualized.png"),
		filepath.Join(outDir, "c_visualized.png"),
	}
	if len(written) != len(want) {
		t.Fatalf("wrote %d files, want %d: %v", len(written), len(want), written)
	}
	for i, path := range want {
		if written[i] != path {
			t.Errorf("written[%d] = %q, want %q", i, written[i], path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("output %s not written: %v", path, err)
		}
	}
}

func TestRenderFolderEmpty(t *testing.T) {
	r := testRunner(t)

	written, err := r.RenderFolder(context.Background(), t.TempDir(), t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("RenderFolder() error = %v", err)
	}
	if len(written) != 0 {
		t.Errorf("wrote %d files from an empty directory", len(written))
	}
}

func TestRenderFolderMissingImagesDir(t *testing.T) {
	r := testRunner(t)

	_, err := r.RenderFolder(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir(), t.TempDir())
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}
}
