package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MalchuL/vision-ocr-dumper/pkg/annotation"
	"github.com/MalchuL/vision-ocr-dumper/pkg/errors"
)

// newStatsCmd creates the stats command for summarizing label files.
func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [label.json|labels-dir]",
		Short: "Summarize annotation label files",
		Long: `Summarize annotation label files.

Prints element counts, text length, and confidence statistics for a
single label file, or aggregated over every .json file in a directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidatePath(args[0]); err != nil {
				return err
			}
			return runStats(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runStats(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)

	fi, err := os.Stat(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", input)
	}

	labels := []string{input}
	if fi.IsDir() {
		labels, err = listLabels(input)
		if err != nil {
			return err
		}
		if len(labels) == 0 {
			printWarning("No label files found in %s", input)
			return nil
		}
	}

	var total annotation.Stats
	var confSum float64
	files := 0
	for _, path := range labels {
		tree, err := annotation.ImportJSON(path)
		if errors.Is(err, errors.ErrCodeNoContent) {
			logger.Debugf("Skipping %s: no annotation content", filepath.Base(path))
			continue
		}
		if err != nil {
			logger.Errorf("Reading %s: %v", filepath.Base(path), err)
			continue
		}

		s := annotation.Collect(tree)
		total.Pages += s.Pages
		total.Blocks += s.Blocks
		total.Paragraphs += s.Paragraphs
		total.Words += s.Words
		total.Symbols += s.Symbols
		total.TextLength += s.TextLength
		confSum += s.AvgConfidence
		files++
	}

	if files == 0 {
		printWarning("No readable annotation content in %s", input)
		return nil
	}

	fmt.Println(StyleTitle.Render("Annotation statistics") + " " + StyleHighlight.Render(input))
	printKeyValue("files", fmt.Sprintf("%d", files))
	printKeyValue("pages", fmt.Sprintf("%d", total.Pages))
	printKeyValue("blocks", fmt.Sprintf("%d", total.Blocks))
	printKeyValue("paragraphs", fmt.Sprintf("%d", total.Paragraphs))
	printKeyValue("words", fmt.Sprintf("%d", total.Words))
	printKeyValue("symbols", fmt.Sprintf("%d", total.Symbols))
	printKeyValue("text length", fmt.Sprintf("%d", total.TextLength))
	printKeyValue("avg confidence", fmt.Sprintf("%.2f", confSum/float64(files)))
	return nil
}

// listLabels returns the .json files directly under dir, sorted by name.
func listLabels(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read labels directory %s", dir)
	}
	var labels []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			labels = append(labels, filepath.Join(dir, e.Name()))
		}
	}
	return labels, nil
}
