// Package cmd — alttext command.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erik-winther/tagpipe/core"
	"github.com/erik-winther/tagpipe/core/alttext"
	"github.com/erik-winther/tagpipe/core/doc"
	"github.com/erik-winther/tagpipe/core/output"
)

var (
	flagAltOutput      string
	flagAltAuto        bool
	flagAltInteractive bool
	flagAltFile        string
	flagAltExport      string
	flagAltModel       string
)

var alttextCmd = &cobra.Command{
	Use:   "alttext <input>",
	Short: "Attach alt text to the document's images",
	Long: `Alttext enumerates the embedded images of a PDF, collects a
description for each one, and writes a Figure structure element with
an Alt entry per described image.

Exactly one acquisition mode is required:
  --auto           generate descriptions with a multimodal model
                   (requires OPENROUTER_API_KEY)
  --interactive    prompt for each image on stdin
  --alt-text-file  load descriptions from a JSON file {"1": "...", ...}

Examples:
  tagpipe alttext slides.pdf --interactive
  tagpipe alttext slides.pdf --auto --export-alt-text alts.json
  tagpipe alttext slides.pdf --alt-text-file reviewed.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAlttext,
}

func init() {
	rootCmd.AddCommand(alttextCmd)
	alttextCmd.Flags().StringVarP(&flagAltOutput, "output", "o", "", "Output PDF path (default: <stem>_tagged.pdf)")
	alttextCmd.Flags().BoolVar(&flagAltAuto, "auto", false, "Generate alt text with a multimodal model")
	alttextCmd.Flags().BoolVar(&flagAltInteractive, "interactive", false, "Prompt for alt text on stdin")
	alttextCmd.Flags().StringVar(&flagAltFile, "alt-text-file", "", "Load alt text from a JSON file")
	alttextCmd.Flags().StringVar(&flagAltExport, "export-alt-text", "", "Write the collected alt text to a JSON file")
	alttextCmd.Flags().StringVar(&flagAltModel, "model", "", "Model for --auto (default: "+alttext.DefaultModel+")")
}

// altMode validates the mutually exclusive acquisition flags.
func altMode(auto, interactive bool, file string) (alttext.Mode, error) {
	modes := 0
	mode := alttext.ModeSkip
	if auto {
		modes++
		mode = alttext.ModeAuto
	}
	if interactive {
		modes++
		mode = alttext.ModeInteractive
	}
	if file != "" {
		modes++
		mode = alttext.ModeFile
	}
	if modes > 1 {
		return "", fmt.Errorf("--auto, --interactive and --alt-text-file are mutually exclusive")
	}
	return mode, nil
}

// collectAlt runs the selected acquisition mode over the image
// inventory. file and model only apply to their respective modes;
// skip mode leaves every image without alt text.
func collectAlt(ctx context.Context, mode alttext.Mode, pdfDoc *doc.Doc, images []core.Image, file, model string) ([]core.Image, error) {
	switch mode {
	case alttext.ModeFile:
		alts, err := alttext.LoadFile(file)
		if err != nil {
			return nil, err
		}
		return alttext.Apply(images, alts), nil
	case alttext.ModeInteractive:
		return alttext.Interactive(images, os.Stdin, os.Stdout), nil
	case alttext.ModeAuto:
		describer := alttext.NewOpenRouterDescriber(model, logger)
		gen := alttext.NewGenerator(describer, logger)
		return gen.Describe(ctx, images, pdfDoc.ImageData), nil
	default:
		return images, nil
	}
}

func runAlttext(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mode, err := altMode(flagAltAuto, flagAltInteractive, flagAltFile)
	if err != nil {
		return err
	}
	if mode == alttext.ModeSkip {
		return fmt.Errorf("an acquisition mode is required: --auto, --interactive or --alt-text-file")
	}

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

	images := pdfDoc.Images()
	if len(images) == 0 {
		fmt.Println("No images found in the document.")
	}

	images, err = collectAlt(ctx, mode, pdfDoc, images, flagAltFile, flagAltModel)
	if err != nil {
		return err
	}

	if flagAltExport != "" {
		if err := alttext.SaveFile(flagAltExport, images); err != nil {
			return err
		}
		fmt.Printf("Alt text exported: %s\n", flagAltExport)
	}

	if err := pdfDoc.ApplyStructure(nil, images); err != nil {
		return err
	}

	writer, err := output.New("")
	if err != nil {
		return err
	}
	outPath := flagAltOutput
	if outPath == "" {
		outPath = writer.EnhancedPath(args[0], output.SuffixTagged)
	}
	if err := pdfDoc.Save(outPath); err != nil {
		return err
	}

	described := 0
	for _, img := range images {
		if img.Alt != "" {
			described++
		}
	}
	fmt.Printf("Images: %d, with alt text: %d\n", len(images), described)
	fmt.Printf("Tagged PDF created: %s\n", outPath)
	return nil
}
