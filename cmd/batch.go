// Package cmd — batch command, directory mode.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erik-winther/tagpipe/batch"
	"github.com/erik-winther/tagpipe/core/alttext"
	"github.com/erik-winther/tagpipe/core/meta"
	"github.com/erik-winther/tagpipe/core/output"
	"github.com/erik-winther/tagpipe/core/render"
)

var (
	flagBatchOutDir    string
	flagBatchSkip      bool
	flagBatchAuto      bool
	flagBatchReportDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Run the complete workflow over every PDF under a directory",
	Long: `Batch discovers the PDF files under a directory tree and runs the
complete accessibility workflow over each one, sequentially. Hidden
directories and previously produced output files are skipped.

Files that fail are reported and do not stop the run; the exit code is
non-zero when any file failed or left its checklist incomplete.

Examples:
  tagpipe batch ./course-material --skip-images
  tagpipe batch ./inbox --auto --out-dir ./done --report-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&flagBatchOutDir, "out-dir", "", "Directory for enhanced PDFs (default: next to each input)")
	batchCmd.Flags().BoolVar(&flagBatchSkip, "skip-images", false, "Skip alt text collection")
	batchCmd.Flags().BoolVar(&flagBatchAuto, "auto", false, "Generate alt text with a multimodal model")
	batchCmd.Flags().StringVar(&flagBatchReportDir, "report-dir", "", "Directory for per-file Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if flagBatchSkip && flagBatchAuto {
		return fmt.Errorf("--skip-images and --auto are mutually exclusive")
	}
	mode := alttext.ModeSkip
	if flagBatchAuto {
		mode = alttext.ModeAuto
	}

	files, err := batch.Discover(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No PDF files found.")
		return nil
	}
	fmt.Printf("Found %d PDF files to process\n", len(files))

	p, err := newPipeline()
	if err != nil {
		return err
	}
	writer, err := output.New(flagBatchOutDir)
	if err != nil {
		return err
	}
	var reports *output.Writer
	if flagBatchReportDir != "" {
		if reports, err = output.New(flagBatchReportDir); err != nil {
			return err
		}
	}

	var failed int
	for i, file := range files {
		fmt.Printf("[%d/%d] Processing %s\n", i+1, len(files), file)

		outPath := writer.EnhancedPath(file, output.SuffixAccessible)
		rep, err := processOne(ctx, p, file, outPath, processOpts{mode: mode, overrides: meta.Overrides{}})
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			failed++
			continue
		}
		if !rep.Verification.Passed {
			fmt.Fprintf(os.Stderr, "  ✗ Checklist incomplete: %s\n", outPath)
			failed++
		} else {
			fmt.Printf("  ✓ Written: %s\n", outPath)
		}

		if reports != nil {
			data, err := render.NewMarkdownRenderer().Render(rep)
			if err == nil {
				reportPath := reports.ReportPath(file, ".md")
				err = reports.Write(reportPath, data)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "  ✗ Report error: %v\n", err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d/%d files failed", failed, len(files))
	}
	return nil
}
