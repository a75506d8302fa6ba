package history

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arcgen/backend/internal/model/diagram"
)

var (
	ErrDiagramNotFound = errors.New("diagram not found")
	ErrVersionNotFound = errors.New("version not found")
)

const (
	// MaxDiagrams caps the store; the oldest-updated diagram is evicted first.
	MaxDiagrams = 20
	// MaxVersionsPerDiagram caps each version chain.
	MaxVersionsPerDiagram = 50
)

// Service keeps diagram histories in memory. State is intentionally
// ephemeral: a restart clears it.
type Service struct {
	mu       sync.RWMutex
	diagrams map[string]*diagram.History
}

// NewService bootstraps an empty history store.
func NewService() *Service {
	return &Service{diagrams: make(map[string]*diagram.History)}
}

// CreateDiagram starts a new diagram with its initial version and returns it.
func (s *Service) CreateDiagram(_ context.Context, prompt, xml, provider, model string, metadata map[string]string) (diagram.Version, error) {
	now := time.Now().UTC()
	h := &diagram.History{
		DiagramID: uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	version := newVersion(h.DiagramID, prompt, xml, provider, model, metadata, now)
	h.Versions = append(h.Versions, version)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagrams[h.DiagramID] = h
	s.evictLocked()
	return version, nil
}

// AddVersion appends a version to an existing diagram.
func (s *Service) AddVersion(_ context.Context, diagramID, prompt, xml, provider, model string, metadata map[string]string) (diagram.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.diagrams[diagramID]
	if !ok {
		return diagram.Version{}, ErrDiagramNotFound
	}

	now := time.Now().UTC()
	version := newVersion(diagramID, prompt, xml, provider, model, metadata, now)
	h.Versions = append(h.Versions, version)
	if len(h.Versions) > MaxVersionsPerDiagram {
		h.Versions = h.Versions[len(h.Versions)-MaxVersionsPerDiagram:]
	}
	h.UpdatedAt = now
	return version, nil
}

// GetHistory returns the full version chain for a diagram.
func (s *Service) GetHistory(_ context.Context, diagramID string) (diagram.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.diagrams[diagramID]
	if !ok {
		return diagram.History{}, ErrDiagramNotFound
	}

	copied := *h
	copied.Versions = append([]diagram.Version(nil), h.Versions...)
	return copied, nil
}

// GetVersion returns a single version of a diagram.
func (s *Service) GetVersion(_ context.Context, diagramID, versionID string) (diagram.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.diagrams[diagramID]
	if !ok {
		return diagram.Version{}, ErrDiagramNotFound
	}
	for _, v := range h.Versions {
		if v.ID == versionID {
			return v, nil
		}
	}
	return diagram.Version{}, ErrVersionNotFound
}

// LatestXML returns the newest XML for a diagram, used as the edit base.
func (s *Service) LatestXML(_ context.Context, diagramID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.diagrams[diagramID]
	if !ok {
		return "", ErrDiagramNotFound
	}
	latest, ok := h.Latest()
	if !ok {
		return "", ErrVersionNotFound
	}
	return latest.XML, nil
}

// List returns diagram summaries sorted by update time, newest first.
func (s *Service) List(_ context.Context) []diagram.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]diagram.Summary, 0, len(s.diagrams))
	for _, h := range s.diagrams {
		summary := diagram.Summary{
			DiagramID:    h.DiagramID,
			CreatedAt:    h.CreatedAt,
			UpdatedAt:    h.UpdatedAt,
			VersionCount: len(h.Versions),
		}
		if latest, ok := h.Latest(); ok {
			summary.LatestPrompt = truncatePrompt(latest.Prompt)
			summary.LatestProvider = latest.Provider
			summary.LatestModel = latest.Model
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries
}

// Delete removes a diagram and all of its versions.
func (s *Service) Delete(_ context.Context, diagramID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.diagrams[diagramID]; !ok {
		return ErrDiagramNotFound
	}
	delete(s.diagrams, diagramID)
	return nil
}

// Stats reports aggregate store size.
func (s *Service) Stats(_ context.Context) diagram.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := diagram.Stats{Diagrams: len(s.diagrams)}
	for _, h := range s.diagrams {
		stats.Versions += len(h.Versions)
		for _, v := range h.Versions {
			stats.TotalBytes += int64(len(v.XML) + len(v.Prompt))
		}
	}
	if stats.Diagrams > 0 {
		stats.AvgPerDiag = float64(stats.Versions) / float64(stats.Diagrams)
	}
	return stats
}

// evictLocked drops the oldest-updated diagrams until the cap holds.
// Caller must hold s.mu.
func (s *Service) evictLocked() {
	for len(s.diagrams) > MaxDiagrams {
		var (
			oldestID string
			oldestAt time.Time
		)
		for id, h := range s.diagrams {
			if oldestID == "" || h.UpdatedAt.Before(oldestAt) {
				oldestID = id
				oldestAt = h.UpdatedAt
			}
		}
		delete(s.diagrams, oldestID)
	}
}

func newVersion(diagramID, prompt, xml, provider, model string, metadata map[string]string, at time.Time) diagram.Version {
	return diagram.Version{
		ID:        uuid.NewString(),
		DiagramID: diagramID,
		Timestamp: at,
		Prompt:    prompt,
		XML:       xml,
		Provider:  provider,
		Model:     model,
		Metadata:  metadata,
	}
}

func truncatePrompt(prompt string) string {
	const limit = 100
	if len(prompt) <= limit {
		return prompt
	}
	// Cut on a rune boundary so multi-byte prompts stay valid UTF-8.
	runes := []rune(prompt)
	if len(runes) <= limit {
		return prompt
	}
	return string(runes[:limit]) + "..."
}
