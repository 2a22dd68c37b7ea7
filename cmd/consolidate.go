package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/cursor-chronicle/internal"
	"github.com/iksnae/cursor-chronicle/internal/export"
	"github.com/spf13/cobra"
)

var (
	consolidateOutputDir  string
	consolidateOutputFile string
	consolidateFormat     string
)

// consolidateCmd represents the consolidate command
var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Extract all chat sessions and write the consolidated document",
	Long: `Run the full extraction pipeline: read the composer, generations and
prompts keyspaces from the workspace state database, assemble them into
chronological sessions, apply privacy filtering, and write the
consolidated document.

The output location comes from OUTPUT_DIR and OUTPUT_FILENAME in the
configuration, overridable with --output-dir and --output-file. The
default format is markdown; --format selects json, jsonl or yaml
instead.

Examples:
  cursor-chronicle consolidate
  cursor-chronicle consolidate --output-dir ./docs --output-file history.md
  cursor-chronicle consolidate --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := openConfiguredStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if consolidateOutputDir != "" {
			cfg.OutputDir = consolidateOutputDir
		}
		if consolidateOutputFile != "" {
			cfg.OutputFilename = consolidateOutputFile
		}

		exporter, err := export.NewExporter(consolidateFormat)
		if err != nil {
			return err
		}

		outputPath := resolveOutputPath(cfg, exporter.Extension(), consolidateOutputFile == "")

		var (
			doc   *internal.Document
			diags *internal.Diagnostics
		)
		steps := []internal.ProgressStep{
			{
				Message: "Extracting chat sessions",
				Fn: func() error {
					var buildErr error
					doc, diags, buildErr = internal.NewConsolidator(cfg, store).BuildDocument()
					return buildErr
				},
			},
			{
				Message: "Writing consolidated document",
				Fn: func() error {
					return writeDocument(doc, exporter, outputPath)
				},
			},
		}
		if err := internal.ShowProgressWithSteps(cmd.Context(), steps); err != nil {
			return err
		}
		internal.LogInfo("extraction %s complete", doc.Metadata.ExtractionID)

		internal.PrintSuccess(fmt.Sprintf("Consolidated %d session(s), %d message(s) into %s",
			doc.SessionCount(), doc.TotalMessages(), outputPath))
		if len(diags.Skipped) > 0 {
			internal.PrintWarning(diags.Summary())
		}
		return nil
	},
}

// resolveOutputPath combines the configured output location with the
// exporter's extension. When the filename came from configuration rather
// than an explicit --output-file, a non-markdown format swaps the .md
// extension rather than writing JSON into a .md file.
func resolveOutputPath(cfg *internal.Config, extension string, adaptExtension bool) string {
	filename := cfg.OutputFilename
	if adaptExtension {
		if ext := filepath.Ext(filename); ext != "" && ext != "."+extension {
			filename = strings.TrimSuffix(filename, ext) + "." + extension
		}
	}
	return filepath.Join(cfg.OutputDir, filename)
}

func writeDocument(doc *internal.Document, exporter export.Exporter, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: outputPath, Err: err}
	}
	defer func() { _ = f.Close() }()

	if err := exporter.Export(doc, f); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: outputPath, Err: err}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(consolidateCmd)
	consolidateCmd.Flags().StringVar(&consolidateOutputDir, "output-dir", "", "Directory for the consolidated document (default from OUTPUT_DIR)")
	consolidateCmd.Flags().StringVar(&consolidateOutputFile, "output-file", "", "Filename for the consolidated document (default from OUTPUT_FILENAME)")
	consolidateCmd.Flags().StringVarP(&consolidateFormat, "format", "f", "md", "Output format: md, json, jsonl, yaml")
}
