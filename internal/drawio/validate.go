// Package drawio validates and manipulates draw.io mxCell XML fragments.
//
// The LLM tool protocol exchanges bare mxCell fragments (no mxfile or
// mxGraphModel wrappers); this package checks the structural rules the
// draw.io editor relies on and wraps fragments into complete documents.
package drawio

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ValidationError reports a structural problem in mxCell XML.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "drawio: " + e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

var forbiddenWrappers = []string{"<mxfile", "<mxGraphModel", "<root"}

// ValidateFragment checks that xml is a valid mxCell fragment:
//
//  1. Only mxCell elements at the top level, no wrapper tags.
//  2. No root cells (id "0" or "1").
//  3. mxCell elements are siblings, never nested.
//  4. Every mxCell has a unique id and a parent attribute.
//  5. Every vertex/edge cell has an mxGeometry child.
func ValidateFragment(fragment string) error {
	for _, tag := range forbiddenWrappers {
		if strings.Contains(fragment, tag) {
			return validationErrorf("XML must not contain %s> tag, only mxCell elements", tag)
		}
	}

	dec := xml.NewDecoder(strings.NewReader("<wrap>" + fragment + "</wrap>"))

	type cellState struct {
		id          string
		vertex      bool
		edge        bool
		hasGeometry bool
	}

	var (
		depth    int // 1 == inside the synthetic wrapper
		cell     *cellState
		seenIDs  = map[string]struct{}{}
		cellSeen bool
	)

	finishCell := func(c *cellState) error {
		if (c.vertex || c.edge) && !c.hasGeometry {
			return validationErrorf("mxCell id=%q is missing mxGeometry element", c.id)
		}
		return nil
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return validationErrorf("XML parsing error: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 1:
				// synthetic wrapper
			case depth == 2:
				if t.Name.Local != "mxCell" {
					return validationErrorf("found non-mxCell element: %s", t.Name.Local)
				}
				cellSeen = true
				c := cellState{}
				var hasParent bool
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "id":
						c.id = attr.Value
					case "parent":
						hasParent = attr.Value != ""
					case "vertex":
						c.vertex = attr.Value == "1"
					case "edge":
						c.edge = attr.Value == "1"
					}
				}
				if c.id == "" {
					return validationErrorf("found mxCell without id attribute")
				}
				if c.id == "0" || c.id == "1" {
					return validationErrorf("root cells (id=\"0\" or id=\"1\") must not be included")
				}
				if _, dup := seenIDs[c.id]; dup {
					return validationErrorf("duplicate cell ID found: %s", c.id)
				}
				seenIDs[c.id] = struct{}{}
				if !hasParent {
					return validationErrorf("mxCell id=%q missing parent attribute", c.id)
				}
				cell = &c
			default:
				if t.Name.Local == "mxCell" {
					return validationErrorf("mxCell elements must be siblings, found nested mxCell inside id=%q", cell.id)
				}
				if t.Name.Local == "mxGeometry" && depth == 3 && cell != nil {
					cell.hasGeometry = true
				}
			}
		case xml.EndElement:
			if depth == 2 && cell != nil {
				if err := finishCell(cell); err != nil {
					return err
				}
				cell = nil
			}
			depth--
		}
	}

	if !cellSeen {
		return validationErrorf("no mxCell elements found")
	}
	return nil
}

// FixEntities escapes bare ampersands and undoes double escaping so the
// fragment parses. The model occasionally emits "A & B" labels verbatim.
func FixEntities(fragment string) string {
	s := strings.TrimSpace(fragment)
	s = strings.ReplaceAll(s, "&", "&amp;")
	for _, ent := range []string{"amp", "lt", "gt", "quot", "apos", "#"} {
		s = strings.ReplaceAll(s, "&amp;"+ent, "&"+ent)
	}
	return s
}

// ValidateAndFix normalizes entities and validates the fragment, returning
// the fixed fragment on success.
func ValidateAndFix(fragment string) (string, error) {
	fixed := FixEntities(fragment)
	if err := ValidateFragment(fixed); err != nil {
		return "", err
	}
	return fixed, nil
}
