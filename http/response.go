package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"frt-offers/domain"
)

const codeInternal = "internal"

type errorBody struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	OK    bool      `json:"ok"`
	Error errorBody `json:"error"`
}

// writeJSON encodes into a buffer first so a failed encode can still produce
// a clean 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		logger.Error("encoding response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("writing response", zap.Error(err))
	}
}

func statusForKind(kind domain.ErrorKind) int {
	if kind.Client() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		writeJSON(w, logger, statusForKind(de.Kind), errorEnvelope{
			Error: errorBody{Code: string(de.Kind), Field: de.Field, Message: de.Message},
		})
		return
	}
	logger.Error("unexpected error", zap.Error(err))
	writeJSON(w, logger, http.StatusInternalServerError, errorEnvelope{
		Error: errorBody{Code: codeInternal, Message: "internal server error"},
	})
}

func writeBadRequest(w http.ResponseWriter, logger *zap.Logger, message string) {
	writeJSON(w, logger, http.StatusBadRequest, errorEnvelope{
		Error: errorBody{Code: string(domain.KindInvalidRequest), Message: message},
	})
}
