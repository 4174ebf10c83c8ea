package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the offer API. limiter may be nil to disable rate limiting
// of offer generation and reference reloads.
func NewRouter(offers *OfferHandler, catalog *CatalogHandler, limiter *RateLimiter, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", catalog.Health)
		api.Get("/ports/load", catalog.ListLoadPorts)
		api.Get("/ports/discharge", catalog.ListDischargePorts)
		api.Get("/cargoes", catalog.ListCargoes)
		api.Get("/charterers", catalog.ListCharterers)

		api.Group(func(limited chi.Router) {
			if limiter != nil {
				limited.Use(RateLimit(limiter, logger))
			}
			limited.Post("/generate", offers.GenerateOffer)
			limited.Post("/reference/reload", catalog.Reload)
		})
	})
	return r
}
