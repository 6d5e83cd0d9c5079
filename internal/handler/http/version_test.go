package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/service"
)

func newHandlerWithVersion(version string) *Handler {
	return NewHandler(
		&service.Services{AppInfoService: &stubAppInfoService{version: version}},
		testServerConfig(),
		config.App{Token: testToken},
		logger.Nop(),
	)
}

func TestGetServerVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"semver", "1.2.3"},
		{"pre-release with build metadata", "v2.0.0-beta+build.42"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithVersion(tt.version)
			rec := httptest.NewRecorder()

			h.getServerVersion(rec, httptest.NewRequest(http.MethodGet, "/_sync/version", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.version, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		})
	}
}
