package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"frt-offers/domain"
)

const maxRequestBytes = 64 << 10

type OfferGenerator interface {
	Generate(ctx context.Context, req domain.OfferRequest) (domain.OfferResult, error)
}

type OfferHandler struct {
	service OfferGenerator
	logger  *zap.Logger
}

func NewOfferHandler(service OfferGenerator, logger *zap.Logger) *OfferHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OfferHandler{service: service, logger: logger}
}

func (h *OfferHandler) GenerateOffer(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input domain.OfferRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		h.logger.Debug("decoding offer request", zap.Error(err))
		writeBadRequest(w, h.logger, "invalid request body")
		return
	}

	result, err := h.service.Generate(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
