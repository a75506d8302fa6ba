// Package shapelib serves shape library documentation.
package shapelib

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arcgen/backend/internal/handler/httperr"
	shapelibService "github.com/arcgen/backend/internal/service/shapelib"
	"github.com/arcgen/backend/pkg/utils"
)

type Handler struct {
	libs *shapelibService.Manager
}

func New(libs *shapelibService.Manager) *Handler {
	return &Handler{libs: libs}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/shape-library/{name}", h.handleGet)
	r.Get("/shape-libraries", h.handleList)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	lib, err := h.libs.Get(name)
	if err != nil {
		utils.RespondError(w, httperr.Status(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, lib)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"libraries": h.libs.List()})
}
