// Package batch — file filtering rules.
package batch

import (
	"path/filepath"
	"strings"

	"github.com/erik-winther/tagpipe/core/output"
)

// IsPDF reports whether path names a PDF file by extension.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// IsHidden reports whether a file or directory name is hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// IsDerived reports whether path looks like one of our own outputs, so
// reruns do not re-process enhanced copies.
func IsDerived(path string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(stem, output.SuffixAccessible) ||
		strings.HasSuffix(stem, output.SuffixTagged)
}
