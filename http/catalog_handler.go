package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"frt-offers/domain"
	"frt-offers/repository"
)

type CatalogLister interface {
	ListLoadPorts(ctx context.Context) []domain.Port
	ListDischargePorts(ctx context.Context) []domain.Port
	ListCargoes(ctx context.Context) []domain.Cargo
	ListCharterers(ctx context.Context) []domain.ChartererInfo
	CatalogVersion() string
}

// CatalogHandler serves the reference catalogs used to fill selection
// lists, plus health and reload endpoints.
type CatalogHandler struct {
	catalog  CatalogLister
	reloader repository.Reloader
	logger   *zap.Logger
}

// NewCatalogHandler creates the handler. reloader may be nil when the
// reference data is static.
func NewCatalogHandler(catalog CatalogLister, reloader repository.Reloader, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{catalog: catalog, reloader: reloader, logger: logger}
}

func (h *CatalogHandler) ListLoadPorts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.catalog.ListLoadPorts(r.Context()))
}

func (h *CatalogHandler) ListDischargePorts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.catalog.ListDischargePorts(r.Context()))
}

func (h *CatalogHandler) ListCargoes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.catalog.ListCargoes(r.Context()))
}

func (h *CatalogHandler) ListCharterers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.catalog.ListCharterers(r.Context()))
}

func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"ok":              true,
		"catalog_version": h.catalog.CatalogVersion(),
	})
}

// Reload re-reads the reference files. A rejected reload leaves the active
// data untouched.
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		http.Error(w, "reference data is static", http.StatusNotImplemented)
		return
	}
	cat, err := h.reloader.Reload(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"ok":              true,
		"catalog_version": cat.Version(),
	})
}
