package diagram

import "time"

// History is the full version chain of a single diagram.
type History struct {
	DiagramID string    `json:"diagramId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Versions  []Version `json:"versions"`
}

// Latest returns the most recent version, or false when the chain is empty.
func (h History) Latest() (Version, bool) {
	if len(h.Versions) == 0 {
		return Version{}, false
	}
	return h.Versions[len(h.Versions)-1], true
}

// Summary is the list-view projection of a History.
type Summary struct {
	DiagramID      string    `json:"diagramId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	VersionCount   int       `json:"versionCount"`
	LatestPrompt   string    `json:"latestPrompt"`
	LatestProvider string    `json:"latestProvider"`
	LatestModel    string    `json:"latestModel"`
}

// Stats describes the aggregate size of the history store.
type Stats struct {
	Diagrams   int     `json:"diagrams"`
	Versions   int     `json:"versions"`
	TotalBytes int64   `json:"totalBytes"`
	AvgPerDiag float64 `json:"averageVersionsPerDiagram"`
}
