// Package doc wraps the PDF object model: opening and saving files,
// reading and writing document metadata, building the accessibility
// structure tree, and enumerating embedded images.
package doc

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Properties are the document info fields stored in a PDF, plus the
// catalog language entry. Missing fields are empty strings.
type Properties struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Language string
}

// Doc is an open PDF document pending modification. It holds the full
// object table in memory; the source file is closed after Open.
type Doc struct {
	ctx    *model.Context
	path   string
	logger *slog.Logger
}

// Open reads, validates and optimizes the PDF at path.
func Open(path string, logger *slog.Logger) (*Doc, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &Doc{ctx: ctx, path: path, logger: logger}, nil
}

// Path returns the path the document was opened from.
func (d *Doc) Path() string { return d.path }

// PageCount returns the number of pages.
func (d *Doc) PageCount() int { return d.ctx.PageCount }

// Save writes the document, with all modifications, to path.
func (d *Doc) Save(path string) error {
	if err := api.WriteContextFile(d.ctx, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Properties returns the existing document info entries and the
// catalog language.
func (d *Doc) Properties() Properties {
	var p Properties

	if d.ctx.Info != nil {
		if info, err := d.ctx.DereferenceDict(*d.ctx.Info); err == nil && info != nil {
			p.Title = d.stringValue(info, "Title")
			p.Author = d.stringValue(info, "Author")
			p.Subject = d.stringValue(info, "Subject")
			p.Keywords = d.stringValue(info, "Keywords")
		}
	}
	if root, err := d.ctx.Catalog(); err == nil {
		p.Language = d.stringValue(root, "Lang")
	}

	return p
}

// catalog returns the document catalog dictionary.
func (d *Doc) catalog() (types.Dict, error) {
	root, err := d.ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("reading document catalog: %w", err)
	}
	return root, nil
}

// infoDict returns the document info dictionary, creating it when the
// file has none.
func (d *Doc) infoDict() (types.Dict, error) {
	if d.ctx.Info != nil {
		if info, err := d.ctx.DereferenceDict(*d.ctx.Info); err == nil && info != nil {
			return info, nil
		}
	}

	info := types.Dict{}
	ref, err := d.ctx.IndRefForNewObject(info)
	if err != nil {
		return nil, fmt.Errorf("creating info dictionary: %w", err)
	}
	d.ctx.Info = ref
	return info, nil
}

// stringValue resolves a dictionary entry to a Go string. PDF text
// strings come in literal and hex flavors; anything else reads as "".
func (d *Doc) stringValue(dict types.Dict, key string) string {
	obj, found := dict.Find(key)
	if !found {
		return ""
	}
	obj, err := d.ctx.Dereference(obj)
	if err != nil {
		return ""
	}

	switch v := obj.(type) {
	case types.StringLiteral:
		s, err := types.StringLiteralToString(v)
		if err != nil {
			return ""
		}
		return s
	case types.HexLiteral:
		s, err := types.HexLiteralToString(v)
		if err != nil {
			return ""
		}
		return s
	}
	return ""
}

// boolValue resolves a dictionary entry to a bool. Missing or
// non-boolean entries read as false.
func (d *Doc) boolValue(dict types.Dict, key string) bool {
	obj, found := dict.Find(key)
	if !found {
		return false
	}
	obj, err := d.ctx.Dereference(obj)
	if err != nil {
		return false
	}
	b, ok := obj.(types.Boolean)
	return ok && bool(b)
}

// literalEscaper escapes the characters that terminate or confuse a
// PDF string literal.
var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	"(", `\(`,
	")", `\)`,
)

// textString encodes s as a PDF text string. Plain ASCII fits a string
// literal, with backslashes and parentheses escaped; anything else
// becomes UTF-16BE with a BOM in a hex literal.
func textString(s string) types.Object {
	ascii := true
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			ascii = false
			break
		}
	}
	if ascii {
		return types.StringLiteral(literalEscaper.Replace(s))
	}

	u := utf16.Encode([]rune(s))
	b := make([]byte, 0, 2*len(u)+2)
	b = append(b, 0xfe, 0xff)
	for _, cp := range u {
		b = append(b, byte(cp>>8), byte(cp))
	}
	return types.NewHexLiteral(b)
}
