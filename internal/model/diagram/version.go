package diagram

import "time"

// Version is one generated revision of a diagram: the prompt that produced
// it, the resulting XML, and which provider/model answered.
type Version struct {
	ID        string            `json:"id"`
	DiagramID string            `json:"diagramId"`
	Timestamp time.Time         `json:"timestamp"`
	Prompt    string            `json:"prompt"`
	XML       string            `json:"xml"`
	Provider  string            `json:"provider"`
	Model     string            `json:"model"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
