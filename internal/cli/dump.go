package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MalchuL/vision-ocr-dumper/pkg/annotation"
	"github.com/MalchuL/vision-ocr-dumper/pkg/errors"
	"github.com/MalchuL/vision-ocr-dumper/pkg/ocr"
	"github.com/MalchuL/vision-ocr-dumper/pkg/render/overlay"
)

// dumpOpts holds the command-line flags for the dump command.
type dumpOpts struct {
	output    string   // dataset root, receives images/ and labels/
	languages []string // Tesseract language codes
	recursive bool     // descend into subdirectories when discovering images
}

// dumpReport is the JSON summary written next to the dumped dataset.
type dumpReport struct {
	RunID     string     `json:"run_id"`
	CreatedAt time.Time  `json:"created_at"`
	SourceDir string     `json:"source_dir"`
	OutputDir string     `json:"output_dir"`
	Languages []string   `json:"languages,omitempty"`
	Processed int        `json:"processed"`
	Failed    int        `json:"failed"`
	Items     []dumpItem `json:"items"`
}

type dumpItem struct {
	File  string           `json:"file"`
	Label string           `json:"label"`
	Stats annotation.Stats `json:"stats"`
}

// newDumpCmd creates the dump command for building an annotated dataset
// from raw images via OCR.
func newDumpCmd() *cobra.Command {
	var opts dumpOpts

	cmd := &cobra.Command{
		Use:   "dump [images-dir]",
		Short: "Run OCR on images and dump an annotated dataset",
		Long: `Run OCR on images and dump an annotated dataset.

Each discovered image is recognized with Tesseract, copied into
<output>/images/, and its annotation tree written as a JSON label to
<output>/labels/<stem>.json. The labels pair with the copied images by
stem, so the dataset feeds directly into 'visualize'.

A summary table is printed and a JSON report with a unique run ID is
written to <output>/report.json. Failures of individual images are
logged and do not abort the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidatePath(args[0]); err != nil {
				return err
			}
			return runDump(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "./dataset", "dataset output directory")
	cmd.Flags().StringSliceVarP(&opts.languages, "lang", "L", nil, "Tesseract language code(s), e.g. eng, deu")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "descend into subdirectories")

	return cmd
}

func runDump(ctx context.Context, imagesDir string, opts *dumpOpts) error {
	logger := loggerFromContext(ctx)

	images, err := discoverImages(imagesDir, opts.recursive)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		printWarning("No image files found in %s", imagesDir)
		return nil
	}

	outImages := filepath.Join(opts.output, "images")
	outLabels := filepath.Join(opts.output, "labels")
	for _, dir := range []string{outImages, outLabels} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeOutputWrite, err, "create output directory %s", dir)
		}
	}

	rec, err := ocr.NewTesseract(opts.languages...)
	if err != nil {
		return err
	}
	defer rec.Close()

	logger.Infof("Found %d images to dump", len(images))
	prog := newProgress(logger)

	report := dumpReport{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		SourceDir: imagesDir,
		OutputDir: opts.output,
		Languages: opts.languages,
	}

	for _, imagePath := range images {
		if err := ctx.Err(); err != nil {
			return err
		}

		item, err := dumpImage(ctx, rec, imagePath, outImages, outLabels)
		if err != nil {
			logger.Errorf("Dumping %s: %v", filepath.Base(imagePath), err)
			report.Failed++
			continue
		}
		report.Items = append(report.Items, item)
		report.Processed++
		logger.Debugf("Dumped %s (%d words)", filepath.Base(imagePath), item.Stats.Words)
	}

	prog.done(fmt.Sprintf("Dumped %d of %d images", report.Processed, len(images)))

	reportPath := filepath.Join(opts.output, "report.json")
	if err := writeReport(report, reportPath); err != nil {
		return err
	}

	printInfo("Run %s", report.RunID)
	printNewline()
	printSummaryTable(report.Items)
	printSuccess("Dumped %d images to %s", report.Processed, opts.output)
	if report.Failed > 0 {
		printWarning("%d images failed; see the log above", report.Failed)
	}
	printFile(reportPath)
	return nil
}

// dumpImage recognizes one image, copies it into the dataset, and writes
// its label file.
func dumpImage(ctx context.Context, rec ocr.Recognizer, imagePath, outImages, outLabels string) (dumpItem, error) {
	tree, err := rec.Recognize(ctx, imagePath)
	if err != nil {
		return dumpItem{}, err
	}

	base := filepath.Base(imagePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if err := copyFile(imagePath, filepath.Join(outImages, base)); err != nil {
		return dumpItem{}, errors.Wrap(errors.ErrCodeOutputWrite, err, "copy %s", base)
	}

	labelPath := filepath.Join(outLabels, stem+".json")
	if err := annotation.ExportJSON(tree, base, labelPath); err != nil {
		return dumpItem{}, errors.Wrap(errors.ErrCodeOutputWrite, err, "write label %s", labelPath)
	}

	return dumpItem{
		File:  base,
		Label: labelPath,
		Stats: annotation.Collect(tree),
	}, nil
}

// discoverImages finds supported image files under dir, sorted by walk
// order. Non-recursive mode looks at the directory's direct entries only.
func discoverImages(dir string, recursive bool) ([]string, error) {
	var images []string

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read images directory %s", dir)
		}
		for _, e := range entries {
			if !e.IsDir() && overlay.IsImagePath(e.Name()) {
				images = append(images, filepath.Join(dir, e.Name()))
			}
		}
		return images, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && overlay.IsImagePath(path) {
			images = append(images, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk images directory %s", dir)
	}
	return images, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func writeReport(report dumpReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "write report %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "encode report %s", path)
	}
	return nil
}

// printSummaryTable renders the per-image dump summary.
func printSummaryTable(items []dumpItem) {
	if len(items) == 0 {
		return
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader.Padding(0, 1)
			}
			return styleTableCell
		}).
		Headers("FILE", "PAGES", "WORDS", "TEXT LEN", "AVG CONF")

	for _, it := range items {
		tbl.Row(
			it.File,
			fmt.Sprintf("%d", it.Stats.Pages),
			fmt.Sprintf("%d", it.Stats.Words),
			fmt.Sprintf("%d", it.Stats.TextLength),
			fmt.Sprintf("%.2f", it.Stats.AvgConfidence),
		)
	}

	fmt.Println(tbl.Render())
}
