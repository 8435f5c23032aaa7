package doc

import (
	"log/slog"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/erik-winther/tagpipe/core"
)

// Verify re-opens the file at path and runs the accessibility
// checklist against what was actually written.
func Verify(path string, logger *slog.Logger) (*core.Verification, error) {
	d, err := Open(path, logger)
	if err != nil {
		return nil, err
	}
	return d.Verify()
}

// Verify runs the accessibility checklist against the open document:
// structure tree present, marked flag, viewer title preference,
// catalog language, and info dictionary title and author. It also
// counts the heading and figure elements under the Document element.
func (d *Doc) Verify() (*core.Verification, error) {
	root, err := d.catalog()
	if err != nil {
		return nil, err
	}

	v := &core.Verification{}

	_, hasTree := root.Find("StructTreeRoot")
	v.Checks = append(v.Checks, core.Check{Name: "StructTreeRoot", Passed: hasTree})

	marked := false
	if markInfo, err := d.ctx.DereferenceDict(root["MarkInfo"]); err == nil && markInfo != nil {
		marked = d.boolValue(markInfo, "Marked")
	}
	v.Checks = append(v.Checks, core.Check{Name: "MarkInfo.Marked", Passed: marked})

	displayTitle := false
	if prefs, err := d.ctx.DereferenceDict(root["ViewerPreferences"]); err == nil && prefs != nil {
		displayTitle = d.boolValue(prefs, "DisplayDocTitle")
	}
	v.Checks = append(v.Checks, core.Check{Name: "DisplayDocTitle", Passed: displayTitle})

	props := d.Properties()
	v.Checks = append(v.Checks, core.Check{Name: "Language", Passed: props.Language != "", Detail: props.Language})
	v.Checks = append(v.Checks, core.Check{Name: "Title", Passed: d.hasInfoEntry("Title"), Detail: props.Title})
	v.Checks = append(v.Checks, core.Check{Name: "Author", Passed: d.hasInfoEntry("Author"), Detail: props.Author})

	if hasTree {
		d.countElements(root, v)
	}

	v.Passed = true
	for _, c := range v.Checks {
		if !c.Passed {
			v.Passed = false
			break
		}
	}
	return v, nil
}

// hasInfoEntry reports whether the document info dictionary carries
// the given key at all, present-but-empty included.
func (d *Doc) hasInfoEntry(key string) bool {
	if d.ctx.Info == nil {
		return false
	}
	info, err := d.ctx.DereferenceDict(*d.ctx.Info)
	if err != nil || info == nil {
		return false
	}
	_, found := info.Find(key)
	return found
}

// countElements walks the Document element's children and tallies
// heading and figure entries.
func (d *Doc) countElements(root types.Dict, v *core.Verification) {
	tree, err := d.ctx.DereferenceDict(root["StructTreeRoot"])
	if err != nil || tree == nil {
		return
	}
	kids, err := d.ctx.DereferenceArray(tree["K"])
	if err != nil || len(kids) == 0 {
		return
	}
	docElem, err := d.ctx.DereferenceDict(kids[0])
	if err != nil || docElem == nil {
		return
	}
	elems, err := d.ctx.DereferenceArray(docElem["K"])
	if err != nil {
		return
	}

	for _, o := range elems {
		elem, err := d.ctx.DereferenceDict(o)
		if err != nil || elem == nil {
			continue
		}
		s, ok := elem["S"].(types.Name)
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(string(s), "H"):
			v.HeadingElements++
		case s == "Figure":
			v.FigureElements++
			if d.stringValue(elem, "Alt") != "" {
				v.FiguresWithAlt++
			}
		}
	}
}
