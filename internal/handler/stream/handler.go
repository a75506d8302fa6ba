// Package stream serves the SSE diagram generation endpoint. Each event
// carries a JSON payload; event types mirror the generation phases: start,
// delta, tool, diagram, error, end.
package stream

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

// Streamer runs one generation request, reporting progress through emit.
type Streamer interface {
	Stream(ctx context.Context, req generateModel.Request, emit func(generateModel.Event) error) error
}

type Handler struct {
	streamer Streamer
}

func New(streamer Streamer) *Handler {
	return &Handler{streamer: streamer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/generate-stream", h.handleGenerateStream)
}

func (h *Handler) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	var req generateModel.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		utils.RespondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	utils.SetupSSEHeaders(w)

	emit := func(ev generateModel.Event) error {
		return utils.SendSSEEvent(w, flusher, ev.Type, ev)
	}

	if err := h.streamer.Stream(r.Context(), req, emit); err != nil {
		log.Printf("[stream] generation failed: %v", err)
		// Headers are already sent; report the failure in-band.
		ev := generateModel.Event{Type: generateModel.EventError, Error: err.Error()}
		if status := httperr.Status(err); status == http.StatusInternalServerError {
			ev.Error = "generation failed"
		}
		_ = utils.SendSSEEvent(w, flusher, ev.Type, ev)
	}
}
