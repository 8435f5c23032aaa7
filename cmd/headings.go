// Package cmd — headings command.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erik-winther/tagpipe/core"
	"github.com/erik-winther/tagpipe/core/doc"
	"github.com/erik-winther/tagpipe/core/meta"
	"github.com/erik-winther/tagpipe/core/outline"
	"github.com/erik-winther/tagpipe/core/output"
)

var (
	flagHeadingsOutput string
	flagHeadingsFile   string
	flagHeadingsExport string
)

var headingsCmd = &cobra.Command{
	Use:   "headings <input>",
	Short: "Detect headings and write H1–H6 structure elements",
	Long: `Headings detects heading lines in the extracted text (or loads them
from a JSON file), writes an H element per heading into the structure
tree, and saves a tagged copy of the PDF.

The JSON exchange format is a list of {"page", "text", "level"}
records; --export-headings writes the detected headings in that format
so they can be reviewed, edited and fed back in with --headings-file.

Examples:
  tagpipe headings thesis.pdf
  tagpipe headings thesis.pdf --export-headings headings.json
  tagpipe headings thesis.pdf --headings-file reviewed.json -o thesis_tagged.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runHeadings,
}

func init() {
	rootCmd.AddCommand(headingsCmd)
	headingsCmd.Flags().StringVarP(&flagHeadingsOutput, "output", "o", "", "Output PDF path (default: <stem>_tagged.pdf)")
	headingsCmd.Flags().StringVar(&flagHeadingsFile, "headings-file", "", "Load headings from a JSON file instead of detecting them")
	headingsCmd.Flags().StringVar(&flagHeadingsExport, "export-headings", "", "Write the heading list to a JSON file")
}

func runHeadings(cmd *cobra.Command, args []string) error {
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

	var headings []core.HeadingCandidate
	if flagHeadingsFile != "" {
		headings, err = outline.LoadHeadings(flagHeadingsFile)
		if err != nil {
			return err
		}
	} else {
		a, err := p.analyze(ctx, path, pdfDoc, meta.Overrides{})
		if err != nil {
			return err
		}
		headings = a.headings
	}

	if flagHeadingsExport != "" {
		if err := outline.SaveHeadings(flagHeadingsExport, headings); err != nil {
			return err
		}
		fmt.Printf("Headings exported: %s\n", flagHeadingsExport)
	}

	if err := pdfDoc.ApplyStructure(headings, nil); err != nil {
		return err
	}

	writer, err := output.New("")
	if err != nil {
		return err
	}
	outPath := flagHeadingsOutput
	if outPath == "" {
		outPath = writer.EnhancedPath(args[0], output.SuffixTagged)
	}
	if err := pdfDoc.Save(outPath); err != nil {
		return err
	}

	printHeadingSummary(headings)
	fmt.Printf("\nTagged PDF created: %s\n", outPath)
	return nil
}

// printHeadingSummary prints the per-level tally and the nested
// outline of the headings that were written.
func printHeadingSummary(headings []core.HeadingCandidate) {
	fmt.Printf("Headings written: %d\n", len(headings))
	counts := outline.CountByLevel(headings)
	for level := 1; level <= 6; level++ {
		if counts[level] > 0 {
			fmt.Printf("  H%d: %d\n", level, counts[level])
		}
	}
	if len(headings) > 0 {
		fmt.Println("\nDocument outline:")
		printSections(os.Stdout, outline.Build(headings), 1)
	}
}

func printSections(w *os.File, sections []core.Section, depth int) {
	for _, sec := range sections {
		fmt.Fprintf(w, "%*s%s (p. %d)\n", 2*depth, "", sec.Heading.Text, sec.Heading.Page)
		printSections(w, sec.Children, depth+1)
	}
}
