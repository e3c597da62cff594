package overlay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/MalchuL/vision-ocr-dumper/pkg/annotation"
	"github.com/MalchuL/vision-ocr-dumper/pkg/errors"
	"github.com/MalchuL/vision-ocr-dumper/pkg/observability"
)

// imageExtensions is the set of image file extensions considered by batch
// rendering, lowercase with dot.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".tif":  true,
}

// IsImagePath reports whether path has a supported image file extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Runner renders annotation overlays onto image files.
//
// The Runner is stateless apart from its settings and logger; multiple
// renders may reuse the same Runner sequentially. Each render call loads
// its own image copy and releases it when the output file is written.
type Runner struct {
	Config Config
	Logger *log.Logger
}

// NewRunner creates a runner with the given draw settings.
// If logger is nil, log.Default() is used.
func NewRunner(cfg Config, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Config: cfg, Logger: logger}
}

// OutputPath returns the output file path for an input image: the image
// stem plus a "_visualized" suffix and the configured output format,
// under dir (or the configured output directory when dir is empty).
func (r *Runner) OutputPath(imagePath, dir string) string {
	if dir == "" {
		dir = r.Config.Global.OutputDir
	}
	stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	return filepath.Join(dir, fmt.Sprintf("%s_visualized.%s", stem, r.Config.Global.OutputFormat))
}

// RenderFile renders the annotations in labelPath onto the image at
// imagePath and writes the result to outputPath (derived from the image
// stem and the configured output directory when empty).
//
// It returns the path of the written file. When the label file holds no
// annotation content, the render is a no-op and the original imagePath is
// returned unchanged. Image load failures carry
// [errors.ErrCodeImageLoad]; write failures carry
// [errors.ErrCodeOutputWrite].
func (r *Runner) RenderFile(ctx context.Context, imagePath, labelPath, outputPath string) (string, error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, imagePath)

	out, err := r.renderFile(imagePath, labelPath, outputPath)
	observability.Render().OnRenderComplete(ctx, imagePath, out, time.Since(start), err)
	return out, err
}

func (r *Runner) renderFile(imagePath, labelPath, outputPath string) (string, error) {
	src, err := imaging.Open(imagePath)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeImageLoad, err, "load image %s", imagePath)
	}

	tree, err := annotation.ImportJSON(labelPath)
	if errors.Is(err, errors.ErrCodeNoContent) {
		// Nothing to draw; hand back the untouched source image.
		r.Logger.Warnf("No annotation content in %s", labelPath)
		return imagePath, nil
	}
	if err != nil {
		return "", err
	}

	surface := Render(src, tree, r.Config)

	if outputPath == "" {
		outputPath = r.OutputPath(imagePath, "")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeOutputWrite, err, "create output directory for %s", outputPath)
	}
	if err := imaging.Save(surface, outputPath); err != nil {
		return "", errors.Wrap(errors.ErrCodeOutputWrite, err, "save visualization %s", outputPath)
	}

	r.Logger.Debugf("Saved visualization to %s", outputPath)
	return outputPath, nil
}

// RenderFolder renders every supported image in imagesDir whose label
// file of matching stem exists in labelsDir, writing outputs to outputDir
// (the configured output directory when empty).
//
// Images without a matching label file are skipped with a warning.
// Failures of one image are logged and do not abort the batch. The
// returned slice holds the paths written.
func (r *Runner) RenderFolder(ctx context.Context, imagesDir, labelsDir, outputDir string) ([]string, error) {
	if outputDir == "" {
		outputDir = r.Config.Global.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutputWrite, err, "create output directory %s", outputDir)
	}

	images, err := listImages(imagesDir)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		r.Logger.Warnf("No image files found in %s", imagesDir)
		return nil, nil
	}

	start := time.Now()
	observability.Render().OnBatchStart(ctx, imagesDir, len(images))
	r.Logger.Infof("Found %d images to visualize", len(images))

	var written []string
	for _, imagePath := range images {
		stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
		labelPath := filepath.Join(labelsDir, stem+".json")

		if _, err := os.Stat(labelPath); err != nil {
			r.Logger.Warnf("No label file found for %s", filepath.Base(imagePath))
			observability.Render().OnBatchItemSkipped(ctx, imagePath, "no label file")
			continue
		}

		out, err := r.RenderFile(ctx, imagePath, labelPath, r.OutputPath(imagePath, outputDir))
		if err != nil {
			r.Logger.Errorf("Visualizing %s: %v", filepath.Base(imagePath), err)
			continue
		}
		written = append(written, out)
	}

	observability.Render().OnBatchComplete(ctx, len(written), time.Since(start))
	r.Logger.Infof("Visualized %d images (%s)", len(written), time.Since(start).Round(time.Millisecond))
	return written, nil
}

// listImages returns the supported image files directly under dir,
// sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read images directory %s", dir)
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if IsImagePath(e.Name()) {
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}
	return images, nil
}
