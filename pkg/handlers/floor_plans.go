package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/facade"
	"github.com/sitedesk/sitedesk-engine/pkg/services"
)

// FloorPlanHandler handles floor plan endpoints.
type FloorPlanHandler struct {
	data   *facade.Facade
	logger *zap.Logger
}

// NewFloorPlanHandler creates a new floor plan handler.
func NewFloorPlanHandler(data *facade.Facade, logger *zap.Logger) *FloorPlanHandler {
	return &FloorPlanHandler{data: data, logger: logger}
}

// RegisterRoutes registers the floor plan routes on the given mux.
func (h *FloorPlanHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/floorplans", h.Create)
	mux.HandleFunc("GET /api/floorplans/{id}", h.Get)
	mux.HandleFunc("PUT /api/floorplans/{id}", h.Update)
	mux.HandleFunc("DELETE /api/floorplans/{id}", h.Delete)
	mux.HandleFunc("GET /api/floorplans/{id}/rooms", h.Rooms)
	mux.HandleFunc("GET /api/floorplans/{id}/rooms/stats", h.RoomsWithStats)
}

func (h *FloorPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateFloorPlanInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	plan, err := h.data.CreateFloorPlan(r.Context(), input)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, plan)
}

func (h *FloorPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	plan, err := h.data.FetchFloorPlan(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, plan)
}

func (h *FloorPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var input services.UpdateFloorPlanInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	plan, err := h.data.UpdateFloorPlan(r.Context(), id, input)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, plan)
}

func (h *FloorPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	if err := h.data.DeleteFloorPlan(r.Context(), id); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FloorPlanHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	rooms, err := h.data.FetchRoomsByFloorPlan(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, rooms)
}

func (h *FloorPlanHandler) RoomsWithStats(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	rooms, err := h.data.FetchRoomsByFloorPlanWithStats(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, rooms)
}
