// Package httperr maps service errors to HTTP status codes.
package httperr

import (
	"errors"
	"net/http"

	"github.com/arcgen/backend/internal/drawio"
	"github.com/arcgen/backend/internal/service/ai"
	"github.com/arcgen/backend/internal/service/history"
	"github.com/arcgen/backend/internal/service/shapelib"
	"github.com/arcgen/backend/internal/service/upload"
)

// Status returns the HTTP status code for a service error.
func Status(err error) int {
	var validation *drawio.ValidationError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, ai.ErrProvider):
		return http.StatusBadGateway
	case errors.Is(err, ai.ErrNoCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ai.ErrSecurity):
		return http.StatusForbidden
	case errors.Is(err, ai.ErrUnknownProvider), errors.Is(err, ai.ErrProviderAmbiguous):
		return http.StatusBadRequest
	case errors.Is(err, history.ErrDiagramNotFound), errors.Is(err, history.ErrVersionNotFound):
		return http.StatusNotFound
	case errors.Is(err, shapelib.ErrLibraryNotFound):
		return http.StatusNotFound
	case errors.Is(err, upload.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, upload.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}
