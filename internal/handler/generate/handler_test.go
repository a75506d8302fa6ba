package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	generateModel "github.com/arcgen/backend/internal/model/generate"
	"github.com/arcgen/backend/internal/service/ai"
)

type stubGenerator struct {
	resp *generateModel.Response
	err  error
	got  generateModel.Request
}

func (s *stubGenerator) Generate(ctx context.Context, req generateModel.Request) (*generateModel.Response, error) {
	s.got = req
	return s.resp, s.err
}

func setupRouter(stub *stubGenerator) *chi.Mux {
	r := chi.NewRouter()
	New(stub).RegisterRoutes(r)
	return r
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGenerateSuccess(t *testing.T) {
	stub := &stubGenerator{resp: &generateModel.Response{
		DiagramID: "d1",
		XML:       "<mxfile></mxfile>",
		Provider:  "openai",
		Model:     "gpt-4o",
	}}
	r := setupRouter(stub)

	resp := postJSON(r, "/generate", generateModel.Request{Prompt: "draw a vpc"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if stub.got.Prompt != "draw a vpc" {
		t.Errorf("generator got prompt %q", stub.got.Prompt)
	}

	var out generateModel.Response
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if out.DiagramID != "d1" || out.XML == "" {
		t.Errorf("unexpected response: %+v", out)
	}
}

func TestGenerateMissingPrompt(t *testing.T) {
	r := setupRouter(&stubGenerator{})

	resp := postJSON(r, "/generate", generateModel.Request{Prompt: "  "})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGenerateInvalidBody(t *testing.T) {
	r := setupRouter(&stubGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("{not json"))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGenerateErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{err: ai.ErrNoCredentials, want: http.StatusUnauthorized},
		{err: ai.ErrUnknownProvider, want: http.StatusBadRequest},
		{err: ai.ErrSecurity, want: http.StatusForbidden},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		r := setupRouter(&stubGenerator{err: tc.err})
		resp := postJSON(r, "/generate", generateModel.Request{Prompt: "p"})
		if resp.Code != tc.want {
			t.Errorf("error %v: expected %d, got %d", tc.err, tc.want, resp.Code)
		}
	}
}
