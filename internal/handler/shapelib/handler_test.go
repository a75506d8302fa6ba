package shapelib

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	shapelibService "github.com/arcgen/backend/internal/service/shapelib"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(shapelibService.NewManager("")).RegisterRoutes(r)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGetShapeLibrary(t *testing.T) {
	r := setupRouter()

	resp := get(r, "/shape-library/aws4")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var lib shapelibService.Library
	if err := json.Unmarshal(resp.Body.Bytes(), &lib); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if lib.Name != "aws4" || lib.Content == "" {
		t.Errorf("unexpected library: %+v", lib)
	}
}

func TestGetShapeLibraryUnknown(t *testing.T) {
	r := setupRouter()

	resp := get(r, "/shape-library/not-a-library")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestGetShapeLibraryTraversal(t *testing.T) {
	r := setupRouter()

	// Encoded "../" sequences must never reach the filesystem.
	resp := get(r, "/shape-library/..%2F..%2Fetc%2Fpasswd")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListShapeLibraries(t *testing.T) {
	r := setupRouter()

	resp := get(r, "/shape-libraries")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var out struct {
		Libraries []string `json:"libraries"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(out.Libraries) == 0 {
		t.Error("expected at least one library")
	}
}
