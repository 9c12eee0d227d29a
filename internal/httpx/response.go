// Package httpx holds the HTTP plumbing shared by both widgets.
package httpx

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/carlosfiori/conversor-clima/internal/fetch"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Error encoding JSON", zap.Error(err))
	}
}

func WriteError(w http.ResponseWriter, logger *zap.Logger, msg string, code int) {
	WriteJSON(w, logger, ErrorResponse{Message: msg}, code)
}

// StatusFor maps a failed fetch to the status code returned to API callers.
func StatusFor(kind fetch.Kind) int {
	switch kind {
	case fetch.KindValidation:
		return http.StatusUnprocessableEntity
	case fetch.KindTransport, fetch.KindData:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
