// Package output derives output paths and writes the files a run
// produces: enhanced PDFs, exported JSON, and rendered reports.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Stem suffixes for derived PDF names.
const (
	SuffixAccessible = "_accessible"
	SuffixTagged     = "_tagged"
)

// Writer writes run outputs to disk.
type Writer struct {
	// OutDir, when set, receives all outputs. Empty means "next to
	// the input".
	OutDir string
}

// New creates a Writer. A non-empty outDir is created up front.
func New(outDir string) (*Writer, error) {
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{OutDir: outDir}, nil
}

// EnhancedPath derives the output path for an enhanced copy of input:
// the stem plus suffix, e.g. report.pdf becomes report_accessible.pdf.
// Remote inputs are named after the final URL path segment and land in
// the output directory, or the working directory when none is set.
func (w *Writer) EnhancedPath(input, suffix string) string {
	return w.derive(input, suffix, "")
}

// ReportPath derives the path for a rendered report of input with the
// given extension.
func (w *Writer) ReportPath(input, ext string) string {
	return w.derive(input, "_report", ext)
}

// Write writes data to path, creating parent directories as needed.
func (w *Writer) Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

func (w *Writer) derive(input, suffix, ext string) string {
	name := baseName(input)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if ext == "" {
		if ext = filepath.Ext(name); ext == "" {
			ext = ".pdf"
		}
	}
	name = stem + suffix + ext

	if w.OutDir != "" {
		return filepath.Join(w.OutDir, name)
	}
	if isURL(input) {
		return name
	}
	return filepath.Join(filepath.Dir(input), name)
}

// baseName returns the file name of a local path, or the last URL path
// segment of a remote input.
func baseName(input string) string {
	if !isURL(input) {
		return filepath.Base(input)
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return sanitize(input) + ".pdf"
	}
	seg := strings.Trim(parsed.Path, "/")
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if seg == "" {
		return sanitize(parsed.Host) + ".pdf"
	}
	return seg
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
