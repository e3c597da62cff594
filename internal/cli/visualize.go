package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MalchuL/vision-ocr-dumper/pkg/errors"
	"github.com/MalchuL/vision-ocr-dumper/pkg/render/overlay"
)

// visualizeOpts holds the command-line flags for the visualize command.
type visualizeOpts struct {
	labels   string // label file (single image) or labels directory (batch)
	output   string // output file or directory
	settings string // draw settings TOML file
}

// newVisualizeCmd creates the visualize command for drawing annotation
// overlays. The argument may be a single image file or a directory of
// images; in the directory case label files are matched by stem.
func newVisualizeCmd() *cobra.Command {
	var opts visualizeOpts

	cmd := &cobra.Command{
		Use:   "visualize [image|images-dir]",
		Short: "Draw annotation overlays onto images",
		Long: `Draw annotation overlays onto images.

For a single image, the label file defaults to the image's stem with a
.json extension next to the image. For a directory, every supported image
is matched against a label file of the same stem in the labels directory
(the images directory itself when --labels is not given); images without
a label are skipped with a warning.

Draw settings are read from a TOML file (--settings). Missing keys fall
back to built-in defaults, and an unreadable file is a warning, not an
error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidatePath(args[0]); err != nil {
				return err
			}
			return runVisualize(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.labels, "labels", "l", "", "label file (single image) or labels directory (batch)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single image) or directory (batch)")
	cmd.Flags().StringVarP(&opts.settings, "settings", "s", "", "draw settings TOML file")

	return cmd
}

// runVisualize dispatches between single-image and directory mode based on
// what the input path points at.
func runVisualize(ctx context.Context, input string, opts *visualizeOpts) error {
	logger := loggerFromContext(ctx)

	fi, err := os.Stat(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", input)
	}

	cfg := overlay.LoadOrDefault(opts.settings, logger)
	runner := overlay.NewRunner(cfg, logger)

	if fi.IsDir() {
		return visualizeFolder(ctx, runner, input, opts)
	}
	return visualizeFile(ctx, runner, input, opts)
}

func visualizeFile(ctx context.Context, runner *overlay.Runner, imagePath string, opts *visualizeOpts) error {
	labelPath := opts.labels
	if labelPath == "" {
		labelPath = strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".json"
	}

	out, err := runner.RenderFile(ctx, imagePath, labelPath, opts.output)
	if err != nil {
		printError("Visualizing %s failed: %s", filepath.Base(imagePath), errors.UserMessage(err))
		return err
	}
	if out == imagePath {
		printWarning("No annotation content in %s; nothing drawn", labelPath)
		return nil
	}

	printSuccess("Visualized %s", filepath.Base(imagePath))
	printDetail("labels: %s", labelPath)
	printFile(out)
	return nil
}

func visualizeFolder(ctx context.Context, runner *overlay.Runner, imagesDir string, opts *visualizeOpts) error {
	logger := loggerFromContext(ctx)

	labelsDir := opts.labels
	if labelsDir == "" {
		labelsDir = imagesDir
	}

	total, err := countImages(imagesDir)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Visualizing %d images...", total))
	spinner.Start()

	written, err := runner.RenderFolder(ctx, imagesDir, labelsDir, opts.output)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return err
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Visualized %d of %d images", len(written), total))

	printSuccess("Visualized %d images", len(written))
	printBatchStats(len(written), total-len(written), 0)
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// countImages counts supported image files directly under dir.
func countImages(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidPath, err, "read images directory %s", dir)
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && overlay.IsImagePath(e.Name()) {
			n++
		}
	}
	return n, nil
}
