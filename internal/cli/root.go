package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MalchuL/vision-ocr-dumper/pkg/buildinfo"
)

// Execute runs the visiondump CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (visualize,
// dump, stats, completion), configures logging based on the --verbose flag,
// and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "visiondump",
		Short:        "Visiondump renders OCR annotations onto images",
		Long:         `Visiondump is a CLI tool for dumping OCR results into annotated datasets and drawing the annotation hierarchy (pages, blocks, paragraphs, words, characters) as overlays on the source images.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newVisualizeCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
