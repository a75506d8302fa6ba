package drawio

import "strings"

// Op names for EditOperation.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)

// EditOperation is one incremental change to an existing diagram.
type EditOperation struct {
	Operation string `json:"operation"`
	CellID    string `json:"cellId"`
	NewXML    string `json:"newXml,omitempty"`
}

// ApplyOperations applies a list of edit operations to a complete diagram
// document and returns the rebuilt document. Operations are applied in order;
// the first failure aborts the whole edit.
func ApplyOperations(doc string, ops []EditOperation) (string, error) {
	cells, err := ParseCells(doc)
	if err != nil {
		return "", err
	}

	for _, op := range ops {
		switch op.Operation {
		case OpDelete:
			idx := indexOfCell(cells, op.CellID)
			if idx < 0 {
				return "", validationErrorf("cell with id %q not found for deletion", op.CellID)
			}
			cells = append(cells[:idx], cells[idx+1:]...)

		case OpUpdate:
			if op.NewXML == "" {
				return "", validationErrorf("newXml required for update operation")
			}
			cell, err := ParseCell(op.NewXML)
			if err != nil {
				return "", err
			}
			idx := indexOfCell(cells, op.CellID)
			if idx < 0 {
				return "", validationErrorf("cell with id %q not found for update", op.CellID)
			}
			cells[idx] = cell

		case OpAdd:
			if op.NewXML == "" {
				return "", validationErrorf("newXml required for add operation")
			}
			cell, err := ParseCell(op.NewXML)
			if err != nil {
				return "", err
			}
			if indexOfCell(cells, op.CellID) >= 0 {
				return "", validationErrorf("cell with id %q already exists", op.CellID)
			}
			cells = append(cells, cell)

		default:
			return "", validationErrorf("unknown operation: %s", op.Operation)
		}
	}

	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		parts = append(parts, c.String())
	}
	return WrapDocument(strings.Join(parts, "\n")), nil
}

func indexOfCell(cells []Cell, id string) int {
	for i, c := range cells {
		if c.ID() == id {
			return i
		}
	}
	return -1
}

// AppendCells validates the new fragment and appends its cells to the given
// document, rejecting ids already present.
func AppendCells(doc, fragment string) (string, error) {
	fixed, err := ValidateAndFix(fragment)
	if err != nil {
		return "", err
	}

	existing := make(map[string]struct{})
	for _, id := range CellIDs(doc) {
		existing[id] = struct{}{}
	}
	for _, id := range CellIDs(fixed) {
		if _, dup := existing[id]; dup {
			return "", validationErrorf("appended cell id %q conflicts with existing cell", id)
		}
	}

	current, err := ExtractCells(doc)
	if err != nil {
		return "", err
	}
	return WrapDocument(current + "\n" + fixed), nil
}
