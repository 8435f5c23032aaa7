// Package extract implements the Extractor interface for PDF files.
// The primary path reads the embedded text layer with positioned text
// items and reconstructs reading-order lines; a raw content-stream
// fallback handles files the text-layer parser cannot read.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/erik-winther/tagpipe/core"
)

// PDFExtractor extracts per-page text from a PDF file.
type PDFExtractor struct {
	logger   *slog.Logger
	fallback *StreamExtractor
}

// New creates a PDFExtractor.
func New(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{
		logger:   logger,
		fallback: NewStream(logger),
	}
}

// Extract returns the per-page text of the PDF at path. A page that
// cannot be parsed degrades to empty text. When the text layer yields
// nothing at all, the content-stream fallback is tried before giving
// up.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (*core.Document, error) {
	doc, err := e.viaTextLayer(ctx, path)
	if err == nil && strings.TrimSpace(doc.FullText()) != "" {
		return doc, nil
	}
	if err != nil {
		e.logger.Warn("text layer extraction failed, trying content streams", "path", path, "error", err)
	} else {
		e.logger.Warn("text layer empty, trying content streams", "path", path)
	}

	fallbackDoc, fallbackErr := e.fallback.Extract(ctx, path)
	if fallbackErr != nil {
		if err == nil {
			// Readable but genuinely empty; that is not an error.
			return doc, nil
		}
		return nil, fmt.Errorf("extracting text from %s: %w", path, fallbackErr)
	}
	return fallbackDoc, nil
}

func (e *PDFExtractor) viaTextLayer(ctx context.Context, path string) (*core.Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	doc := &core.Document{Path: path, Filename: filepath.Base(path)}
	fonts := make(map[string]*pdf.Font)

	for pageNr := 1; pageNr <= r.NumPage(); pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := pageText(r, pageNr, fonts)
		if err != nil {
			e.logger.Warn("could not extract page text", "page", pageNr, "error", err)
			text = ""
		}
		doc.Pages = append(doc.Pages, text)
	}
	return doc, nil
}

// pageText extracts one page. The underlying parser panics on some
// malformed files, so panics are converted into errors here.
func pageText(r *pdf.Reader, pageNr int, fonts map[string]*pdf.Font) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: %v", pageNr, rec)
		}
	}()

	p := r.Page(pageNr)
	if p.V.IsNull() {
		return "", nil
	}

	if lines := composeLines(p.Content().Text); lines != "" {
		return lines, nil
	}

	// No positioned items; fall back to the plain text walk.
	for _, name := range p.Fonts() {
		if _, ok := fonts[name]; !ok {
			font := p.Font(name)
			fonts[name] = &font
		}
	}
	return p.GetPlainText(fonts)
}
