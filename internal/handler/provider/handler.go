// Package provider exposes the LLM provider catalog and connectivity tests.
package provider

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arcgen/backend/internal/handler/httperr"
	generateModel "github.com/arcgen/backend/internal/model/generate"
	providerModel "github.com/arcgen/backend/internal/model/provider"
	"github.com/arcgen/backend/pkg/utils"
)

// Tester runs a round-trip check against a provider.
type Tester interface {
	TestProvider(ctx context.Context, req generateModel.Request) (*generateModel.Response, error)
}

type Handler struct {
	registry providerModel.Registry
	tester   Tester
}

func New(registry providerModel.Registry, tester Tester) *Handler {
	return &Handler{registry: registry, tester: tester}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/providers", h.handleList)
	r.Post("/providers/test", h.handleTest)
}

// status is one catalog entry plus whether credentials for it are present.
type status struct {
	providerModel.Info
	Configured bool `json:"configured"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items := h.registry.List()
	out := make([]status, 0, len(items))
	for _, info := range items {
		out = append(out, status{Info: info, Configured: info.Configured()})
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"providers": out})
}

func (h *Handler) handleTest(w http.ResponseWriter, r *http.Request) {
	var req generateModel.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.tester.TestProvider(r.Context(), req)
	if err != nil {
		log.Printf("[provider] test failed: %v", err)
		utils.RespondError(w, httperr.Status(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}
