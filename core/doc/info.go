package doc

import (
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/erik-winther/tagpipe/core"
)

// ApplyMetadata writes the accessibility metadata into the document
// info dictionary, the catalog language entry, and a fresh XMP packet.
// Author is only written when non-empty, so the verification checklist
// can report it missing. A failed XMP write is logged and ignored; the
// info dictionary stays the authoritative copy.
func (d *Doc) ApplyMetadata(m core.Metadata) error {
	info, err := d.infoDict()
	if err != nil {
		return err
	}
	info["Title"] = textString(m.Title)
	if m.Author != "" {
		info["Author"] = textString(m.Author)
	}
	info["Subject"] = textString(m.Subject)
	info["Keywords"] = textString(m.Keywords)

	root, err := d.catalog()
	if err != nil {
		return err
	}
	if m.Language != "" {
		root["Lang"] = textString(m.Language)
	}

	if err := d.writeXMP(root, m); err != nil {
		d.logger.Warn("xmp metadata update failed", "error", err)
	}
	return nil
}

// writeXMP replaces the catalog metadata stream with a packet built
// from m.
func (d *Doc) writeXMP(root types.Dict, m core.Metadata) error {
	packet := xmpPacket(m)
	length := int64(len(packet))
	sd := types.StreamDict{
		Dict: types.Dict{
			"Type":    types.Name("Metadata"),
			"Subtype": types.Name("XML"),
			"Length":  types.Integer(len(packet)),
		},
		Content:      packet,
		Raw:          packet,
		StreamLength: &length,
	}
	ref, err := d.ctx.IndRefForNewObject(sd)
	if err != nil {
		return err
	}
	root["Metadata"] = *ref
	return nil
}

// xmpPacket renders the XMP metadata stream for m. Written
// uncompressed so readers that scan for the packet can find it. Empty
// fields are omitted.
func xmpPacket(m core.Metadata) []byte {
	var b strings.Builder
	b.WriteString("<?xpacket begin=\"\uFEFF\" id=\"W5M0MpCehiHzreSzNTczkc9d\"?>\n")
	b.WriteString("<x:xmpmeta xmlns:x=\"adobe:ns:meta/\">\n")
	b.WriteString(" <rdf:RDF xmlns:rdf=\"http://www.w3.org/1999/02/22-rdf-syntax-ns#\">\n")
	b.WriteString("  <rdf:Description rdf:about=\"\" xmlns:dc=\"http://purl.org/dc/elements/1.1/\" xmlns:pdf=\"http://ns.adobe.com/pdf/1.3/\">\n")
	if m.Title != "" {
		b.WriteString("   <dc:title><rdf:Alt><rdf:li xml:lang=\"x-default\">" + xmlEscape(m.Title) + "</rdf:li></rdf:Alt></dc:title>\n")
	}
	if m.Author != "" {
		b.WriteString("   <dc:creator><rdf:Seq><rdf:li>" + xmlEscape(m.Author) + "</rdf:li></rdf:Seq></dc:creator>\n")
	}
	if m.Subject != "" {
		b.WriteString("   <dc:description><rdf:Alt><rdf:li xml:lang=\"x-default\">" + xmlEscape(m.Subject) + "</rdf:li></rdf:Alt></dc:description>\n")
	}
	if m.Keywords != "" {
		b.WriteString("   <pdf:Keywords>" + xmlEscape(m.Keywords) + "</pdf:Keywords>\n")
	}
	if m.Language != "" {
		b.WriteString("   <dc:language><rdf:Bag><rdf:li>" + xmlEscape(m.Language) + "</rdf:li></rdf:Bag></dc:language>\n")
	}
	b.WriteString("  </rdf:Description>\n")
	b.WriteString(" </rdf:RDF>\n")
	b.WriteString("</x:xmpmeta>\n")
	b.WriteString("<?xpacket end=\"w\"?>")
	return []byte(b.String())
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
