package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/database"
	"github.com/sitedesk/sitedesk-engine/pkg/facade"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
)

// SessionHandler switches the active per-user database. Establishing a
// session is the only route that works without one.
type SessionHandler struct {
	manager *database.Manager
	data    *facade.Facade
	logger  *zap.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(manager *database.Manager, data *facade.Facade, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{manager: manager, data: data, logger: logger}
}

// RegisterRoutes registers the session routes on the given mux.
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/session", h.Switch)
	mux.HandleFunc("GET /api/session", h.Current)
	mux.HandleFunc("DELETE /api/session", h.End)
}

type switchSessionRequest struct {
	Name string `json:"name"`
}

type sessionResponse struct {
	UserID string       `json:"user_id"`
	User   *models.User `json:"user,omitempty"`
}

// Switch handles POST /api/session: derives the storage identity from the
// display name, opens that user's database and ensures the user row exists.
func (h *SessionHandler) Switch(w http.ResponseWriter, r *http.Request) {
	var req switchSessionRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	if err := h.manager.SwitchUserByName(r.Context(), req.Name); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	ctx, err := h.manager.WithScope(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	user, err := h.data.EnsureUser(ctx, req.Name)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, sessionResponse{
		UserID: h.manager.CurrentUserID(),
		User:   user,
	}); err != nil {
		h.logger.Error("Failed to encode session response", zap.Error(err))
	}
}

// Current handles GET /api/session.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	if !h.manager.IsInitialized() {
		_ = ErrorResponse(w, http.StatusNotFound, "no_active_session", "no user session established")
		return
	}
	_ = WriteJSON(w, http.StatusOK, sessionResponse{UserID: h.manager.CurrentUserID()})
}

// End handles DELETE /api/session: closes the active database.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Close(); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
