// Package cmd — analyze command.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/erik-winther/tagpipe/core"
	"github.com/erik-winther/tagpipe/core/doc"
	"github.com/erik-winther/tagpipe/core/meta"
	"github.com/erik-winther/tagpipe/core/render"
)

var flagAnalyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <input>",
	Short: "Classify a PDF and suggest accessibility metadata",
	Long: `Analyze extracts the text of a PDF, classifies the document type,
detects headings and the document language, and prints the metadata
the other commands would write. Nothing is modified.

Examples:
  tagpipe analyze report.pdf
  tagpipe analyze https://example.com/slides.pdf --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&flagAnalyzeJSON, "json", false, "Print the analysis as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p, err := newPipeline()
	if err != nil {
		return err
	}

	path, cleanup, err := p.resolver.Resolve(ctx, args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	pdfDoc, err := doc.Open(path, logger)
	if err != nil {
		return err
	}

	a, err := p.analyze(ctx, path, pdfDoc, meta.Overrides{})
	if err != nil {
		return err
	}

	var renderer core.Renderer = render.NewTextRenderer()
	if flagAnalyzeJSON {
		renderer = render.NewJSONRenderer()
	}
	out, err := renderer.Render(&core.Report{Analysis: &a.report})
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
