package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/erik-winther/tagpipe/core"
)

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// StreamExtractor reads text by scanning raw page content streams for
// text-showing operators. It is cruder than the text-layer path but
// works on files that defeat it.
type StreamExtractor struct {
	logger *slog.Logger
}

// NewStream creates a StreamExtractor.
func NewStream(logger *slog.Logger) *StreamExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamExtractor{logger: logger}
}

// Extract returns the per-page text of the PDF at path. A page whose
// content stream cannot be read degrades to empty text.
func (e *StreamExtractor) Extract(ctx context.Context, path string) (*core.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	pctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	doc := &core.Document{Path: path, Filename: filepath.Base(path)}
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc.Pages = append(doc.Pages, e.pageText(pctx, pageNr))
	}
	return doc, nil
}

func (e *StreamExtractor) pageText(pctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pctx, pageNr)
	if err != nil || r == nil {
		if err != nil {
			e.logger.Warn("could not read page content stream", "page", pageNr, "error", err)
		}
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return parseContentStream(data)
}

// parseContentStream walks content-stream lines for text-showing
// operators. Td, TD and T* positioning operators become line breaks so
// downstream line heuristics see one text run per line.
func parseContentStream(data []byte) string {
	var b strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				b.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				b.WriteByte('\n')
				b.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")), bytes.Equal(line, []byte("T*")):
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// decodePDFString resolves the escape sequences a PDF string literal
// may contain, including octal escapes like \040.
func decodePDFString(raw []byte) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			b.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\', '(', ')':
			b.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				b.WriteByte(byte(val))
			} else {
				b.WriteByte(raw[i])
			}
		}
	}
	return b.String()
}
