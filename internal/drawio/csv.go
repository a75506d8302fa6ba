package drawio

import (
	"encoding/csv"
	"strings"
)

// CSVHeader is the column layout draw.io's CSV importer expects from us.
var CSVHeader = []string{"id", "label", "shape", "edge_target"}

// ValidateCSV checks the structure of a generated draw.io CSV diagram:
// the "## " directive lines are skipped, the header must match CSVHeader,
// and every data row must carry exactly four columns.
func ValidateCSV(data string) error {
	var rows []string
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rows = append(rows, trimmed)
	}
	if len(rows) == 0 {
		return validationErrorf("CSV contains no data rows")
	}

	r := csv.NewReader(strings.NewReader(strings.Join(rows, "\n")))
	r.FieldsPerRecord = len(CSVHeader)
	records, err := r.ReadAll()
	if err != nil {
		return validationErrorf("CSV parsing error: %v", err)
	}

	for i, col := range records[0] {
		if strings.TrimSpace(col) != CSVHeader[i] {
			return validationErrorf("CSV header must be %q, got %q", strings.Join(CSVHeader, ","), strings.Join(records[0], ","))
		}
	}
	if len(records) < 2 {
		return validationErrorf("CSV contains a header but no data rows")
	}
	return nil
}
