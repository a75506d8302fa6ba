package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcgen/backend/internal/drawio"
	"github.com/arcgen/backend/internal/service/ai"
	"github.com/arcgen/backend/internal/service/history"
	"github.com/arcgen/backend/internal/service/shapelib"
	"github.com/arcgen/backend/internal/service/upload"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"no credentials", ai.ErrNoCredentials, http.StatusUnauthorized},
		{"security", fmt.Errorf("resolve: %w", ai.ErrSecurity), http.StatusForbidden},
		{"unknown provider", ai.ErrUnknownProvider, http.StatusBadRequest},
		{"ambiguous provider", ai.ErrProviderAmbiguous, http.StatusBadRequest},
		{"provider failure", fmt.Errorf("%w: chat model generate: timeout", ai.ErrProvider), http.StatusBadGateway},
		{"diagram not found", history.ErrDiagramNotFound, http.StatusNotFound},
		{"version not found", history.ErrVersionNotFound, http.StatusNotFound},
		{"library not found", shapelib.ErrLibraryNotFound, http.StatusNotFound},
		{"file too large", upload.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"unsupported type", upload.ErrUnsupportedType, http.StatusUnsupportedMediaType},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestStatusValidationError(t *testing.T) {
	err := drawio.ValidateCSV("not,a,valid,header\na,b,c,d")
	assert.Error(t, err)

	// Services wrap validation failures before handlers see them.
	wrapped := fmt.Errorf("model returned invalid CSV: %w", err)
	assert.Equal(t, http.StatusBadRequest, Status(wrapped))
}
