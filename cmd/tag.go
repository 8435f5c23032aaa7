// Package cmd — tag command.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erik-winther/tagpipe/core"
	"github.com/erik-winther/tagpipe/core/doc"
	"github.com/erik-winther/tagpipe/core/meta"
	"github.com/erik-winther/tagpipe/core/output"
	"github.com/erik-winther/tagpipe/core/render"
)

// metaFlags are the metadata override flags shared by the writing
// commands. Empty means "use the inferred value"; language falls back
// to the detected language, then to "en".
type metaFlags struct {
	title    string
	author   string
	subject  string
	keywords string
	language string
}

func (f *metaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Document title (default: inferred)")
	cmd.Flags().StringVar(&f.author, "author", "", "Document author (default: inferred)")
	cmd.Flags().StringVar(&f.subject, "subject", "", "Document subject (default: inferred)")
	cmd.Flags().StringVar(&f.keywords, "keywords", "", "Comma-separated keywords (default: inferred)")
	cmd.Flags().StringVar(&f.language, "language", "", "Document language code (default: detected, else en)")
}

func (f *metaFlags) overrides() meta.Overrides {
	return meta.Overrides{
		Title:    f.title,
		Author:   f.author,
		Subject:  f.subject,
		Keywords: f.keywords,
		Language: f.language,
	}
}

var (
	flagTagOutput string
	tagMeta       metaFlags
)

var tagCmd = &cobra.Command{
	Use:   "tag <input>",
	Short: "Write accessibility metadata and a minimal structure tree",
	Long: `Tag analyzes a PDF, writes the inferred (or overridden) metadata into
the document info dictionary, XMP packet and catalog language entry,
creates a minimal tagged-PDF structure tree, and prints the
verification checklist for the written file.

Examples:
  tagpipe tag report.pdf
  tagpipe tag report.pdf -o report_a11y.pdf --title "Annual Report" --language sv`,
	Args: cobra.ExactArgs(1),
	RunE: runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.Flags().StringVarP(&flagTagOutput, "output", "o", "", "Output PDF path (default: <stem>_accessible.pdf)")
	tagMeta.register(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
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

	a, err := p.analyze(ctx, path, pdfDoc, tagMeta.overrides())
	if err != nil {
		return err
	}

	if err := pdfDoc.ApplyMetadata(a.report.Metadata); err != nil {
		return err
	}
	if err := pdfDoc.ApplyStructure(nil, nil); err != nil {
		return err
	}

	writer, err := output.New("")
	if err != nil {
		return err
	}
	outPath := flagTagOutput
	if outPath == "" {
		outPath = writer.EnhancedPath(args[0], output.SuffixAccessible)
	}
	if err := pdfDoc.Save(outPath); err != nil {
		return err
	}

	verification, err := doc.Verify(outPath, logger)
	if err != nil {
		return err
	}

	rep := &core.Report{Analysis: &a.report, Verification: verification, Output: outPath}
	text, err := render.NewTextRenderer().Render(rep)
	if err != nil {
		return err
	}
	os.Stdout.Write(text)

	if !verification.Passed {
		return fmt.Errorf("accessibility checklist incomplete for %s", outPath)
	}
	return nil
}
