// Package cmd — process command, the complete workflow.
// Runs every stage over one file: analyze → headings → images →
// metadata and structure write → save → verify → report.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erik-winther/tagpipe/core"
	"github.com/erik-winther/tagpipe/core/alttext"
	"github.com/erik-winther/tagpipe/core/doc"
	"github.com/erik-winther/tagpipe/core/meta"
	"github.com/erik-winther/tagpipe/core/outline"
	"github.com/erik-winther/tagpipe/core/output"
	"github.com/erik-winther/tagpipe/core/render"
)

var (
	flagProcOutput       string
	flagProcSkipImages   bool
	flagProcAuto         bool
	flagProcInteractive  bool
	flagProcAltFile      string
	flagProcModel        string
	flagProcHeadingsFile string
	flagProcReport       string
	procMeta             metaFlags
)

var processCmd = &cobra.Command{
	Use:   "process <input>",
	Short: "Run the complete accessibility workflow",
	Long: `Process runs every enhancement over one PDF: document analysis,
heading detection, image alt text, metadata and structure-tree
writing, and a final verification of the written file.

The exit code is 0 only when every verification check passes.

Examples:
  tagpipe process report.pdf --skip-images
  tagpipe process slides.pdf --auto -o slides_accessible.pdf
  tagpipe process thesis.pdf --interactive --report thesis_report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringVarP(&flagProcOutput, "output", "o", "", "Output PDF path (default: <stem>_accessible.pdf)")
	processCmd.Flags().BoolVar(&flagProcSkipImages, "skip-images", false, "Skip alt text collection; images get no descriptions")
	processCmd.Flags().BoolVar(&flagProcAuto, "auto", false, "Generate alt text with a multimodal model")
	processCmd.Flags().BoolVar(&flagProcInteractive, "interactive", false, "Prompt for alt text on stdin")
	processCmd.Flags().StringVar(&flagProcAltFile, "alt-text-file", "", "Load alt text from a JSON file")
	processCmd.Flags().StringVar(&flagProcModel, "model", "", "Model for --auto (default: "+alttext.DefaultModel+")")
	processCmd.Flags().StringVar(&flagProcHeadingsFile, "headings-file", "", "Load headings from a JSON file instead of detecting them")
	processCmd.Flags().StringVar(&flagProcReport, "report", "", "Also write the report to this file (.json, .md, .pdf or .txt)")
	procMeta.register(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mode, err := altMode(flagProcAuto, flagProcInteractive, flagProcAltFile)
	if err != nil {
		return err
	}
	if flagProcSkipImages && mode != alttext.ModeSkip {
		return fmt.Errorf("--skip-images cannot be combined with an alt text mode")
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}

	writer, err := output.New("")
	if err != nil {
		return err
	}
	outPath := flagProcOutput
	if outPath == "" {
		outPath = writer.EnhancedPath(args[0], output.SuffixAccessible)
	}

	rep, err := processOne(ctx, p, args[0], outPath, processOpts{
		mode:         mode,
		altFile:      flagProcAltFile,
		model:        flagProcModel,
		headingsFile: flagProcHeadingsFile,
		overrides:    procMeta.overrides(),
	})
	if err != nil {
		return err
	}

	text, err := render.NewTextRenderer().Render(rep)
	if err != nil {
		return err
	}
	os.Stdout.Write(text)

	if flagProcReport != "" {
		renderer, err := rendererFor(flagProcReport)
		if err != nil {
			return err
		}
		data, err := renderer.Render(rep)
		if err != nil {
			return err
		}
		if err := writer.Write(flagProcReport, data); err != nil {
			return err
		}
		fmt.Printf("Report written: %s\n", flagProcReport)
	}

	if !rep.Verification.Passed {
		return fmt.Errorf("accessibility checklist incomplete for %s", outPath)
	}
	return nil
}

// processOpts select the optional workflow stages for one run.
type processOpts struct {
	mode         alttext.Mode
	altFile      string
	model        string
	headingsFile string
	overrides    meta.Overrides
}

// processOne runs the complete workflow for one input and returns the
// combined report of the written file.
func processOne(ctx context.Context, p *pipeline, input, outPath string, opts processOpts) (*core.Report, error) {
	path, cleanup, err := p.resolver.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pdfDoc, err := doc.Open(path, logger)
	if err != nil {
		return nil, err
	}

	a, err := p.analyze(ctx, path, pdfDoc, opts.overrides)
	if err != nil {
		return nil, err
	}

	headings := a.headings
	if opts.headingsFile != "" {
		headings, err = outline.LoadHeadings(opts.headingsFile)
		if err != nil {
			return nil, err
		}
		a.report.Headings = headings
	}

	images, err := collectAlt(ctx, opts.mode, pdfDoc, a.images, opts.altFile, opts.model)
	if err != nil {
		return nil, err
	}

	if err := pdfDoc.ApplyMetadata(a.report.Metadata); err != nil {
		return nil, err
	}
	if err := pdfDoc.ApplyStructure(headings, images); err != nil {
		return nil, err
	}
	if err := pdfDoc.Save(outPath); err != nil {
		return nil, err
	}

	verification, err := doc.Verify(outPath, logger)
	if err != nil {
		return nil, err
	}

	return &core.Report{Analysis: &a.report, Verification: verification, Output: outPath}, nil
}
