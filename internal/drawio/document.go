package drawio

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Cell is a parsed mxCell element. Children (mxGeometry and friends) are kept
// as raw XML so round-tripping never loses attributes we do not model.
type Cell struct {
	XMLName xml.Name   `xml:"mxCell"`
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

// ID returns the cell's id attribute, or "".
func (c Cell) ID() string {
	return c.Attr("id")
}

// Attr returns the named attribute value, or "".
func (c Cell) Attr(name string) string {
	for _, a := range c.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// String renders the cell back to XML.
func (c Cell) String() string {
	var b strings.Builder
	b.WriteString("<mxCell")
	for _, a := range c.Attrs {
		b.WriteString(" ")
		b.WriteString(a.Name.Local)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteString(`"`)
	}
	inner := strings.TrimSpace(c.Inner)
	if inner == "" {
		b.WriteString(" />")
		return b.String()
	}
	b.WriteString(">")
	b.WriteString(inner)
	b.WriteString("</mxCell>")
	return b.String()
}

func escapeAttr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	// EscapeText escapes newlines and tabs too, which draw.io tolerates.
	return b.String()
}

// ParseCell parses a single mxCell element.
func ParseCell(fragment string) (Cell, error) {
	var c Cell
	if err := xml.Unmarshal([]byte(strings.TrimSpace(fragment)), &c); err != nil {
		return Cell{}, validationErrorf("XML parsing error: %v", err)
	}
	if c.ID() == "" {
		return Cell{}, validationErrorf("found mxCell without id attribute")
	}
	return c, nil
}

// ParseCells parses all mxCell elements in a fragment or full document,
// skipping the root cells id "0" and "1".
func ParseCells(doc string) ([]Cell, error) {
	dec := xml.NewDecoder(strings.NewReader("<wrap>" + doc + "</wrap>"))
	var cells []Cell
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "mxCell" {
			continue
		}
		var c Cell
		if err := dec.DecodeElement(&c, &start); err != nil {
			return nil, validationErrorf("XML parsing error: %v", err)
		}
		if id := c.ID(); id == "0" || id == "1" {
			continue
		}
		cells = append(cells, c)
	}
	return cells, nil
}

// WrapDocument wraps an mxCell fragment into a complete draw.io document.
func WrapDocument(cells string) string {
	return fmt.Sprintf(`<mxfile host="arcgen" agent="arcgen" version="1.0">
  <diagram name="Architecture">
    <mxGraphModel dx="800" dy="600" grid="1" gridSize="10" guides="1" tooltips="1" connect="1" arrows="1" fold="1" page="1" pageScale="1" pageWidth="850" pageHeight="1100">
      <root>
        <mxCell id="0"/>
        <mxCell id="1" parent="0"/>
        %s
      </root>
    </mxGraphModel>
  </diagram>
</mxfile>`, cells)
}

// ExtractCells returns the non-root mxCell elements of a full document as a
// fragment, one cell per line.
func ExtractCells(doc string) (string, error) {
	cells, err := ParseCells(doc)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, "\n"), nil
}

// CellIDs returns the ids of all mxCell elements found in the input,
// including root cells. Parse failures yield an empty list.
func CellIDs(doc string) []string {
	dec := xml.NewDecoder(strings.NewReader("<wrap>" + doc + "</wrap>"))
	var ids []string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "mxCell" {
			continue
		}
		for _, a := range start.Attr {
			if a.Name.Local == "id" && a.Value != "" {
				ids = append(ids, a.Value)
			}
		}
	}
	return ids
}

// UniqueID generates a cell id with the given prefix that does not collide
// with existing ids. Numbering starts from 2; 0 and 1 are the root cells.
func UniqueID(existing []string, prefix string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", prefix, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
