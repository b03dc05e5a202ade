// Package handlers exposes the data layer as a JSON API for the UI process.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
)

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"code":    errorCode,
		"message": message,
	})
}

// WriteError maps a data-layer error onto its HTTP status and the uniform
// error body.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	appErr := apperrors.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	if encodeErr := json.NewEncoder(w).Encode(appErr); encodeErr != nil {
		logger.Error("Failed to encode error response", zap.Error(encodeErr))
	}
}

// decodeBody parses a JSON request body into dst. It writes the error
// response itself and reports success.
func decodeBody(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, logger, apperrors.InvalidInput("body", "request body is not valid JSON"))
		return false
	}
	return true
}
