// Package cmd — shared pipeline assembly.
// Every command drives the same stages: resolve input → extract text →
// normalize → classify → detect language → synthesize metadata. The
// commands differ only in which results they write back into the PDF.
package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erik-winther/tagpipe/core"
	"github.com/erik-winther/tagpipe/core/classify"
	"github.com/erik-winther/tagpipe/core/doc"
	"github.com/erik-winther/tagpipe/core/extract"
	"github.com/erik-winther/tagpipe/core/lang"
	"github.com/erik-winther/tagpipe/core/meta"
	"github.com/erik-winther/tagpipe/core/normalize"
	"github.com/erik-winther/tagpipe/core/render"
	"github.com/erik-winther/tagpipe/core/source"
)

// pipeline holds the stage instances for one process run. The language
// detector loads statistical models on construction, so it is built
// once and shared across batch items.
type pipeline struct {
	resolver   core.Resolver
	extractor  core.Extractor
	normalizer *normalize.TextNormalizer
	headings   *classify.HeadingClassifier
	doctype    *classify.DocTypeClassifier
	detector   *lang.Detector
	synth      *meta.Synthesizer
}

func newPipeline() (*pipeline, error) {
	doctype, err := classify.NewDocTypeClassifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("compiling classification tables: %w", err)
	}
	return &pipeline{
		resolver:   source.New(),
		extractor:  extract.New(logger),
		normalizer: normalize.New(),
		headings:   classify.NewHeadingClassifier(cfg),
		doctype:    doctype,
		detector:   lang.New(),
		synth:      meta.New(),
	}, nil
}

// analysis is the full result of the read-side pipeline for one file:
// the classification record plus the intermediates the write-side
// commands need.
type analysis struct {
	doc      *core.Document
	headings []core.HeadingCandidate
	images   []core.Image
	report   core.Analysis
}

// analyze runs the read-side stages over the already-resolved local
// file. pdfDoc supplies embedded metadata and the image inventory;
// overrides win over every inferred field.
func (p *pipeline) analyze(ctx context.Context, path string, pdfDoc *doc.Doc, ov meta.Overrides) (*analysis, error) {
	document, err := p.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting text: %w", err)
	}
	p.normalizer.Document(document)
	lines := p.normalizer.Lines(document)

	headings := p.headings.DetectAll(lines)

	fullText := document.FullText()
	docType := p.doctype.Classify(fullText, document.Filename)
	slides := p.doctype.IsSlides(document)
	tags := p.doctype.ContentTags(fullText, docType, slides)

	estimate := p.detector.Detect(fullText)

	props := pdfDoc.Properties()
	metadata := p.synth.Synthesize(meta.Input{
		Doc: document,
		Embedded: meta.Embedded{
			Title:    props.Title,
			Author:   props.Author,
			Subject:  props.Subject,
			Keywords: props.Keywords,
			Language: props.Language,
		},
		DocType:   docType,
		Tags:      tags,
		Language:  estimate,
		Overrides: ov,
	})

	images := pdfDoc.Images()

	return &analysis{
		doc:      document,
		headings: headings,
		images:   images,
		report: core.Analysis{
			File:         document.Filename,
			Pages:        document.PageCount(),
			Words:        document.WordCount(),
			Characters:   document.CharCount(),
			Images:       len(images),
			Language:     estimate.Primary,
			Candidates:   estimate.Scores,
			DocumentType: docType,
			Format:       p.doctype.Format(document),
			Tags:         tags,
			Metadata:     metadata,
			Headings:     headings,
		},
	}, nil
}

// rendererFor picks a report renderer by the target file extension.
func rendererFor(path string) (core.Renderer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return render.NewJSONRenderer(), nil
	case ".md", ".markdown":
		return render.NewMarkdownRenderer(), nil
	case ".pdf":
		return render.NewPDFRenderer(), nil
	case ".txt":
		return render.NewTextRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q (use .json, .md, .pdf or .txt)", filepath.Ext(path))
	}
}
