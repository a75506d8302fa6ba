// Package generate serves the blocking diagram generation endpoint.
package generate

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arcgen/backend/internal/handler/httperr"
	generateModel "github.com/arcgen/backend/internal/model/generate"
	"github.com/arcgen/backend/pkg/utils"
)

// Generator runs one blocking generation request.
type Generator interface {
	Generate(ctx context.Context, req generateModel.Request) (*generateModel.Response, error)
}

type Handler struct {
	generator Generator
}

func New(generator Generator) *Handler {
	return &Handler{generator: generator}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/generate", h.handleGenerate)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateModel.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		utils.RespondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	resp, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		log.Printf("[generate] request failed: %v", err)
		utils.RespondError(w, httperr.Status(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}
