package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
)

// parseID extracts and validates a UUID path parameter. On failure it writes
// the error response and reports false.
func parseID(w http.ResponseWriter, r *http.Request, param string, logger *zap.Logger) (uuid.UUID, bool) {
	raw := r.PathValue(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		WriteError(w, logger, apperrors.InvalidInput(param, "malformed id in path"))
		return uuid.Nil, false
	}
	return id, true
}

// actorID reads the optional X-Actor-ID header identifying the user behind a
// mutation. A missing or malformed header yields uuid.Nil, which downstream
// attributes the change to the record's creator.
func actorID(r *http.Request) uuid.UUID {
	raw := r.Header.Get("X-Actor-ID")
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
