package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/facade"
	"github.com/sitedesk/sitedesk-engine/pkg/services"
)

// RoomHandler handles room endpoints.
type RoomHandler struct {
	data   *facade.Facade
	logger *zap.Logger
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(data *facade.Facade, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{data: data, logger: logger}
}

// RegisterRoutes registers the room routes on the given mux.
func (h *RoomHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/rooms", h.Create)
	mux.HandleFunc("GET /api/rooms/{id}", h.Get)
	mux.HandleFunc("GET /api/rooms/{id}/stats", h.GetWithStats)
	mux.HandleFunc("PUT /api/rooms/{id}", h.Update)
	mux.HandleFunc("DELETE /api/rooms/{id}", h.Delete)
	mux.HandleFunc("GET /api/rooms/{id}/tasks", h.Tasks)
	mux.HandleFunc("GET /api/rooms/{id}/tasks/details", h.TasksWithDetails)
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateRoomInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	room, err := h.data.CreateRoom(r.Context(), input)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	room, err := h.data.FetchRoom(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) GetWithStats(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	room, err := h.data.FetchRoomWithStats(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var input services.UpdateRoomInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	room, err := h.data.UpdateRoom(r.Context(), id, input)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	if err := h.data.DeleteRoom(r.Context(), id); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RoomHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	tasks, err := h.data.FetchTasksByRoom(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, tasks)
}

func (h *RoomHandler) TasksWithDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	tasks, err := h.data.FetchTasksByRoomWithDetails(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, tasks)
}
