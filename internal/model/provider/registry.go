package provider

import "os"

// Registry exposes provider lookup for handlers and the AI service.
type Registry interface {
	List() []Info
	FindByName(name Name) (Info, bool)
}

// MemoryRegistry implements Registry with an in-memory slice.
type MemoryRegistry struct {
	items []Info
}

// NewMemoryRegistry returns a MemoryRegistry preloaded with the supplied providers.
func NewMemoryRegistry(items []Info) *MemoryRegistry {
	return &MemoryRegistry{items: append([]Info(nil), items...)}
}

// List returns the provider catalog.
func (r *MemoryRegistry) List() []Info {
	return append([]Info(nil), r.items...)
}

// FindByName looks up a provider by identifier.
func (r *MemoryRegistry) FindByName(name Name) (Info, bool) {
	for _, item := range r.items {
		if item.Name == name {
			return item, true
		}
	}
	return Info{}, false
}

// Configured reports whether the provider's credentials are present in the
// environment. Azure additionally needs an endpoint to be usable.
func (p Info) Configured() bool {
	if p.RequiresAPIKey {
		if os.Getenv(p.APIKeyEnv) == "" {
			return false
		}
	} else if os.Getenv(p.BaseURLEnv) == "" {
		// Keyless providers only count once their endpoint is set, so a
		// local Ollama does not hijack provider auto-detection.
		return false
	}
	if p.Name == Azure && os.Getenv(p.BaseURLEnv) == "" {
		return false
	}
	return true
}
