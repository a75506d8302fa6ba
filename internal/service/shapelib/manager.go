// Package shapelib serves draw.io shape library documentation to the model
// and to the frontend. Libraries come from a built-in catalog; a docs
// directory with {name}.md files can extend or override the catalog text.
package shapelib

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var ErrLibraryNotFound = errors.New("shape library not found")

// Library describes one draw.io shape library.
type Library struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Description  string   `json:"description"`
	Prefix       string   `json:"prefix"`
	Usage        string   `json:"usage"`
	CommonShapes []string `json:"commonShapes"`
	Categories   []string `json:"categories"`
	Content      string   `json:"content,omitempty"`
}

// Manager resolves library lookups against the catalog and the docs dir.
type Manager struct {
	docsDir string
	catalog map[string]Library
}

// NewManager creates a Manager. docsDir may be empty, in which case only the
// built-in catalog is served.
func NewManager(docsDir string) *Manager {
	catalog := make(map[string]Library, len(builtinLibraries))
	for _, lib := range builtinLibraries {
		catalog[lib.Name] = lib
	}
	return &Manager{docsDir: docsDir, catalog: catalog}
}

// List returns the names of all known libraries.
func (m *Manager) List() []string {
	names := make([]string, 0, len(builtinLibraries))
	for _, lib := range builtinLibraries {
		names = append(names, lib.Name)
	}
	return names
}

// Get returns the documentation for a library. The name is sanitized before
// any filesystem access so user input cannot escape the docs directory.
func (m *Manager) Get(name string) (Library, error) {
	safe := SanitizeName(name)
	if safe == "" {
		return Library{}, fmt.Errorf("%w: %q", ErrLibraryNotFound, name)
	}

	lib, known := m.catalog[safe]
	if !known {
		lib = Library{Name: safe}
	}

	if m.docsDir != "" {
		path := filepath.Join(m.docsDir, safe+".md")
		if data, err := os.ReadFile(path); err == nil {
			lib.Content = string(data)
			known = true
		}
	}
	if lib.Content == "" {
		lib.Content = renderCatalogDoc(lib)
	}

	if !known {
		return Library{}, fmt.Errorf("%w: %q (available: %s)", ErrLibraryNotFound, name, strings.Join(m.List(), ", "))
	}
	return lib, nil
}

var libraryNamePattern = regexp.MustCompile(`[^a-z0-9_.-]`)

// SanitizeName lowercases the library name, strips every character outside
// [a-z0-9_.-] and trims leading/trailing dots. "../../etc/passwd" collapses
// to "etcpasswd", which cannot traverse anywhere under the docs dir.
func SanitizeName(name string) string {
	cleaned := libraryNamePattern.ReplaceAllString(strings.ToLower(name), "")
	return strings.Trim(cleaned, ".")
}

func renderCatalogDoc(lib Library) string {
	if lib.Label == "" {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", lib.Label, lib.Description)
	if lib.Prefix != "" {
		fmt.Fprintf(&b, "Shape prefix: %s\n\n", lib.Prefix)
	}
	fmt.Fprintf(&b, "## Usage\n\n%s\n\n", lib.Usage)
	if len(lib.CommonShapes) > 0 {
		fmt.Fprintf(&b, "## Common shapes\n\n%s\n", strings.Join(lib.CommonShapes, ", "))
	}
	return b.String()
}
