// Package upload serves the file upload endpoint.
package upload

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arcgen/backend/internal/handler/httperr"
	uploadService "github.com/arcgen/backend/internal/service/upload"
	"github.com/arcgen/backend/pkg/utils"
)

type Handler struct {
	processor *uploadService.Processor
	maxBytes  int64
}

func New(processor *uploadService.Processor, maxBytes int64) *Handler {
	return &Handler{processor: processor, maxBytes: maxBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload-file", h.handleUpload)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Leave headroom for the multipart framing around the file part.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+(64<<10))

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "file form field is required")
		return
	}
	defer file.Close()

	result, err := h.processor.Process(header.Filename, file)
	if err != nil {
		log.Printf("[upload] processing %q failed: %v", header.Filename, err)
		utils.RespondError(w, httperr.Status(err), err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}
