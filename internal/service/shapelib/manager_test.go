package shapelib

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"aws4", "aws4"},
		{"AWS-2.0_Beta", "aws-2.0_beta"},
		{"../../etc/passwd", "etcpasswd"},
		{"..", ""},
		{"k8s!", "k8s"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeName(tc.in); got != tc.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGetBuiltinLibrary(t *testing.T) {
	m := NewManager("")
	lib, err := m.Get("aws4")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if lib.Prefix != "mxgraph.aws4" {
		t.Fatalf("unexpected prefix %q", lib.Prefix)
	}
	if lib.Content == "" {
		t.Fatal("expected rendered catalog content")
	}
}

func TestGetUnknownLibrary(t *testing.T) {
	m := NewManager("")
	if _, err := m.Get("does-not-exist"); !errors.Is(err, ErrLibraryNotFound) {
		t.Fatalf("expected ErrLibraryNotFound, got %v", err)
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	m := NewManager("")
	lib, err := m.Get("AWS4")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if lib.Name != "aws4" {
		t.Fatalf("unexpected library name %q", lib.Name)
	}
}

func TestDocsDirOverridesContent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "aws4.md"), []byte("custom aws docs"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(dir)
	lib, err := m.Get("aws4")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if lib.Content != "custom aws docs" {
		t.Fatalf("expected docs file content, got %q", lib.Content)
	}
}

func TestTraversalCannotEscapeDocsDir(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "..", "secret.md")
	os.WriteFile(outside, []byte("secret"), 0o644)
	defer os.Remove(outside)

	m := NewManager(dir)
	if lib, err := m.Get("../secret"); err == nil && lib.Content == "secret" {
		t.Fatal("traversal escaped the docs directory")
	}
}
