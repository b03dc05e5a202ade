package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/facade"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/services"
)

// ProjectHandler handles project and membership endpoints. Mutations carry
// the acting user in the X-Actor-ID header for role enforcement.
type ProjectHandler struct {
	data   *facade.Facade
	logger *zap.Logger
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(data *facade.Facade, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{data: data, logger: logger}
}

// RegisterRoutes registers the project routes on the given mux.
func (h *ProjectHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/projects", h.Create)
	mux.HandleFunc("GET /api/projects/{id}", h.Get)
	mux.HandleFunc("GET /api/projects/{id}/stats", h.GetWithStats)
	mux.HandleFunc("PUT /api/projects/{id}", h.Update)
	mux.HandleFunc("DELETE /api/projects/{id}", h.Delete)
	mux.HandleFunc("GET /api/projects/{id}/members", h.Members)
	mux.HandleFunc("POST /api/projects/{id}/members", h.AddMember)
	mux.HandleFunc("PUT /api/projects/{id}/members/{uid}", h.UpdateMemberRole)
	mux.HandleFunc("DELETE /api/projects/{id}/members/{uid}", h.RemoveMember)
	mux.HandleFunc("GET /api/projects/{id}/floorplans", h.FloorPlans)
	mux.HandleFunc("GET /api/projects/{id}/floorplans/stats", h.FloorPlansWithStats)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateProjectInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	project, err := h.data.CreateProject(r.Context(), input)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	project, err := h.data.FetchProject(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) GetWithStats(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	project, err := h.data.FetchProjectWithStats(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var input services.UpdateProjectInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	project, err := h.data.UpdateProject(r.Context(), id, input, actorID(r))
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	if err := h.data.DeleteProject(r.Context(), id, actorID(r)); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) Members(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	members, err := h.data.FetchProjectMembers(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, members)
}

type memberRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var req memberRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}
	member, err := h.data.AddProjectMember(r.Context(), id, req.UserID, models.Role(req.Role), actorID(r))
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, member)
}

func (h *ProjectHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	userID, ok := parseID(w, r, "uid", h.logger)
	if !ok {
		return
	}
	var req memberRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}
	if err := h.data.UpdateProjectMemberRole(r.Context(), id, userID, models.Role(req.Role), actorID(r)); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	userID, ok := parseID(w, r, "uid", h.logger)
	if !ok {
		return
	}
	if err := h.data.RemoveProjectMember(r.Context(), id, userID, actorID(r)); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) FloorPlans(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	plans, err := h.data.FetchFloorPlansByProject(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, plans)
}

func (h *ProjectHandler) FloorPlansWithStats(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	plans, err := h.data.FetchFloorPlansByProjectWithStats(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, plans)
}
