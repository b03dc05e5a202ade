package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/facade"
	"github.com/sitedesk/sitedesk-engine/pkg/services"
)

// UserHandler handles user CRUD endpoints.
type UserHandler struct {
	data   *facade.Facade
	logger *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(data *facade.Facade, logger *zap.Logger) *UserHandler {
	return &UserHandler{data: data, logger: logger}
}

// RegisterRoutes registers the user routes on the given mux.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users", h.Create)
	mux.HandleFunc("GET /api/users", h.List)
	mux.HandleFunc("GET /api/users/{id}", h.Get)
	mux.HandleFunc("PUT /api/users/{id}", h.Rename)
	mux.HandleFunc("DELETE /api/users/{id}", h.Delete)
	mux.HandleFunc("GET /api/users/{id}/projects", h.Projects)
	mux.HandleFunc("GET /api/users/{id}/projects/stats", h.ProjectsWithStats)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateUserInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	user, err := h.data.CreateUser(r.Context(), input)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.data.FetchUsers(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	user, err := h.data.FetchUser(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var input services.CreateUserInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	user, err := h.data.RenameUser(r.Context(), id, input.Name)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	if err := h.data.DeleteUser(r.Context(), id); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Projects(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	projects, err := h.data.FetchProjectsByUser(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, projects)
}

func (h *UserHandler) ProjectsWithStats(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	projects, err := h.data.FetchProjectsByUserWithStats(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, projects)
}
