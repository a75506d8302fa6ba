package ai

import "strings"

// extractCellsFromText pulls raw mxCell markup out of a plain text reply.
// Models occasionally answer with XML in the message body instead of calling
// display_diagram; this salvages that output. The fragment starts at the
// first <mxCell and stops at the first code fence, closing wrapper tag or
// blank line after the cells.
func extractCellsFromText(text string) (string, bool) {
	start := strings.Index(text, "<mxCell")
	if start < 0 {
		return "", false
	}
	fragment := text[start:]

	for _, marker := range []string{"```", "</mxGraphModel>", "\n\n"} {
		if idx := strings.Index(fragment, marker); idx >= 0 {
			fragment = fragment[:idx]
		}
	}

	// Trim trailing prose after the last complete cell.
	if end := strings.LastIndex(fragment, "</mxCell>"); end >= 0 {
		fragment = fragment[:end+len("</mxCell>")]
	} else if end := strings.LastIndex(fragment, "/>"); end >= 0 {
		fragment = fragment[:end+len("/>")]
	}

	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return "", false
	}
	return fragment, true
}

// extractCSV strips markdown code fences from a CSV reply.
func extractCSV(text string) string {
	trimmed := strings.TrimSpace(text)
	if idx := strings.Index(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[idx+3:]
		trimmed = strings.TrimPrefix(trimmed, "csv")
		if end := strings.Index(trimmed, "```"); end >= 0 {
			trimmed = trimmed[:end]
		}
	}
	return strings.TrimSpace(trimmed)
}
