package doc

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/erik-winther/tagpipe/core"
)

// ApplyStructure replaces the document structure tree with a minimal
// accessibility tree: one Document element holding an H element per
// heading and a Figure element per image that carries alt text. It
// also sets MarkInfo.Marked and ViewerPreferences.DisplayDocTitle.
//
// The elements are not linked to page content; they give assistive
// technology the document outline and image descriptions without
// re-tagging the content streams.
func (d *Doc) ApplyStructure(headings []core.HeadingCandidate, images []core.Image) error {
	root, err := d.catalog()
	if err != nil {
		return err
	}

	treeDict := types.Dict{
		"Type":       types.Name("StructTreeRoot"),
		"K":          types.Array{},
		"ParentTree": types.Dict{"Nums": types.Array{}},
		"RoleMap":    types.Dict{},
	}
	treeRef, err := d.ctx.IndRefForNewObject(treeDict)
	if err != nil {
		return fmt.Errorf("creating structure tree root: %w", err)
	}

	docDict := types.Dict{
		"Type": types.Name("StructElem"),
		"S":    types.Name("Document"),
		"P":    *treeRef,
		"K":    types.Array{},
	}
	docRef, err := d.ctx.IndRefForNewObject(docDict)
	if err != nil {
		return fmt.Errorf("creating document element: %w", err)
	}
	treeDict["K"] = types.Array{*docRef}

	kids := types.Array{}
	for _, h := range headings {
		level := core.ClampLevel(h.Level)
		elem := types.Dict{
			"Type": types.Name("StructElem"),
			"S":    types.Name(fmt.Sprintf("H%d", level)),
			"P":    *docRef,
			"K":    types.Array{},
			"T":    textString(h.Text),
		}
		ref, err := d.ctx.IndRefForNewObject(elem)
		if err != nil {
			return fmt.Errorf("creating heading element: %w", err)
		}
		kids = append(kids, *ref)
	}

	figures := 0
	for _, img := range images {
		if img.Alt == "" {
			continue
		}
		elem := types.Dict{
			"Type": types.Name("StructElem"),
			"S":    types.Name("Figure"),
			"P":    *docRef,
			"K":    types.Array{},
			"Alt":  textString(img.Alt),
		}
		ref, err := d.ctx.IndRefForNewObject(elem)
		if err != nil {
			return fmt.Errorf("creating figure element: %w", err)
		}
		kids = append(kids, *ref)
		figures++
	}
	docDict["K"] = kids

	root["StructTreeRoot"] = *treeRef
	root["MarkInfo"] = types.Dict{"Marked": types.Boolean(true)}

	prefs, err := d.ctx.DereferenceDict(root["ViewerPreferences"])
	if err != nil || prefs == nil {
		prefs = types.Dict{}
		root["ViewerPreferences"] = prefs
	}
	prefs["DisplayDocTitle"] = types.Boolean(true)

	d.logger.Debug("structure tree written", "headings", len(headings), "figures", figures)
	return nil
}
