// Package history serves the stored diagram versions.
package history

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arcgen/backend/internal/handler/httperr"
	historyService "github.com/arcgen/backend/internal/service/history"
	"github.com/arcgen/backend/pkg/utils"
)

type Handler struct {
	store *historyService.Service
}

func New(store *historyService.Service) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/history", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/stats", h.handleStats)
		r.Get("/{diagramID}", h.handleGet)
		r.Get("/{diagramID}/versions/{versionID}", h.handleGetVersion)
		r.Delete("/{diagramID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List(r.Context()))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Stats(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	diagramID := chi.URLParam(r, "diagramID")

	hist, err := h.store.GetHistory(r.Context(), diagramID)
	if err != nil {
		utils.RespondError(w, httperr.Status(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, hist)
}

func (h *Handler) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	diagramID := chi.URLParam(r, "diagramID")
	versionID := chi.URLParam(r, "versionID")

	version, err := h.store.GetVersion(r.Context(), diagramID, versionID)
	if err != nil {
		utils.RespondError(w, httperr.Status(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, version)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	diagramID := chi.URLParam(r, "diagramID")

	if err := h.store.Delete(r.Context(), diagramID); err != nil {
		utils.RespondError(w, httperr.Status(err), err.Error())
		return
	}
	log.Printf("[history] deleted diagram %s", diagramID)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"deleted": diagramID})
}
