package doc

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/erik-winther/tagpipe/core"
)

// Images enumerates the image XObjects of the document in page order.
// Ordinals are 1-based and document-wide; an image reused on several
// pages is listed once per page.
func (d *Doc) Images() []core.Image {
	var out []core.Image
	if d.ctx.Optimize == nil {
		return out
	}

	ordinal := 0
	for pageNr := 1; pageNr <= d.ctx.PageCount; pageNr++ {
		objNrs := pdfcpu.ImageObjNrs(d.ctx, pageNr)
		// Set-backed, so the order is not stable.
		sort.Ints(objNrs)
		for _, nr := range objNrs {
			ordinal++
			out = append(out, core.Image{Ordinal: ordinal, Page: pageNr, ObjNr: nr})
		}
	}
	return out
}

// ImageData returns the decoded bytes and MIME type of one embedded
// image.
func (d *Doc) ImageData(img core.Image) ([]byte, string, error) {
	images, err := pdfcpu.ExtractPageImages(d.ctx, img.Page, false)
	if err != nil {
		return nil, "", fmt.Errorf("extracting images from page %d: %w", img.Page, err)
	}

	for objNr, im := range images {
		if objNr != img.ObjNr {
			continue
		}
		data, err := io.ReadAll(im)
		if err != nil {
			return nil, "", fmt.Errorf("reading image object %d: %w", objNr, err)
		}
		return data, mimeForFileType(im.FileType), nil
	}
	return nil, "", fmt.Errorf("image object %d not found on page %d", img.ObjNr, img.Page)
}

func mimeForFileType(fileType string) string {
	switch strings.ToLower(fileType) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "tif", "tiff":
		return "image/tiff"
	}
	return "image/png"
}
