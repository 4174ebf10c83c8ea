package http

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"frt-offers/data"
	"frt-offers/domain"
	"frt-offers/repository"
)

type failingReloader struct{}

func (failingReloader) Reload(context.Context) (*repository.Catalog, error) {
	return nil, domain.NewError(domain.KindInvalidReferenceData, "ports.yaml", "malformed yaml")
}

func newTestRouter(t *testing.T, reloader repository.Reloader, limiter *RateLimiter) http.Handler {
	t.Helper()
	svc := newOfferService(t)
	logger := zaptest.NewLogger(t)
	return NewRouter(
		NewOfferHandler(svc, logger),
		NewCatalogHandler(svc, reloader, logger),
		limiter,
		logger,
	)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["catalog_version"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_KeepsCallerRequestID(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRouter_Listings(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	tests := []struct {
		path string
		want int
	}{
		{"/api/ports/load", 7},
		{"/api/ports/discharge", 6},
		{"/api/cargoes", 7},
		{"/api/charterers", 2},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			var items []map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
			assert.Len(t, items, tt.want)
		})
	}
}

func TestRouter_ChartererListingCarriesPrimary(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/charterers", nil))

	var infos []domain.ChartererInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.NotEmpty(t, infos)
	assert.Equal(t, "CHTR-001", infos[0].ChartererID)
	assert.Equal(t, "Delta Grain Trading SA", infos[0].CompanyName)
	assert.True(t, infos[0].OrSubDefault)
}

func TestRouter_Generate(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, postJSON("/api/generate", reniAlexandriaBody))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/generate", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_ReloadStatic(t *testing.T) {
	router := newTestRouter(t, nil, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reference/reload", nil))

	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestRouter_ReloadRejected(t *testing.T) {
	router := newTestRouter(t, failingReloader{}, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reference/reload", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeError(t, w)
	assert.Equal(t, "invalid_reference_data", env.Error.Code)
	assert.Equal(t, "ports.yaml", env.Error.Field)
}

func TestRouter_ReloadFromSource(t *testing.T) {
	fsys := fstest.MapFS{}
	for _, name := range repository.DataFiles {
		blob, err := fs.ReadFile(data.Files, name)
		require.NoError(t, err)
		fsys[name] = &fstest.MapFile{Data: blob}
	}
	store, err := repository.NewReferenceStore(fsys, zaptest.NewLogger(t))
	require.NoError(t, err)
	fsys[repository.CargoesFile].Data = append(fsys[repository.CargoesFile].Data, []byte("\n# revised\n")...)

	router := newTestRouter(t, store, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reference/reload", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, store.Current().Version(), body["catalog_version"])
}

func TestRouter_RateLimitsGenerate(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	router := newTestRouter(t, nil, limiter)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/api/generate", reniAlexandriaBody))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/api/generate", reniAlexandriaBody))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limited", decodeError(t, w).Error.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code, "listings are not rate limited")
}

func TestRouter_RateLimitsReload(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	router := newTestRouter(t, nil, limiter)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reference/reload", nil))
	require.Equal(t, http.StatusNotImplemented, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reference/reload", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate_limited", decodeError(t, w).Error.Code)
}
