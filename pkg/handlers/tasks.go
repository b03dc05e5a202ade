package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/facade"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/services"
)

// TaskHandler handles task, checklist and comment endpoints.
type TaskHandler struct {
	data   *facade.Facade
	logger *zap.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(data *facade.Facade, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{data: data, logger: logger}
}

// RegisterRoutes registers the task routes on the given mux.
func (h *TaskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/tasks", h.Create)
	mux.HandleFunc("GET /api/tasks", h.List)
	mux.HandleFunc("GET /api/tasks/{id}", h.Get)
	mux.HandleFunc("PUT /api/tasks/{id}", h.Update)
	mux.HandleFunc("PUT /api/tasks/{id}/status", h.UpdateStatus)
	mux.HandleFunc("GET /api/tasks/{id}/progress", h.Progress)
	mux.HandleFunc("GET /api/tasks/{id}/history", h.History)
	mux.HandleFunc("DELETE /api/tasks/{id}", h.Delete)

	mux.HandleFunc("GET /api/tasks/{id}/checklist", h.Checklist)
	mux.HandleFunc("PUT /api/tasks/{id}/checklist/order", h.ReorderChecklist)
	mux.HandleFunc("POST /api/checklist-items", h.AddChecklistItem)
	mux.HandleFunc("PUT /api/checklist-items/{id}", h.UpdateChecklistItem)
	mux.HandleFunc("PUT /api/checklist-items/{id}/position", h.MoveChecklistItem)
	mux.HandleFunc("DELETE /api/checklist-items/{id}", h.DeleteChecklistItem)

	mux.HandleFunc("GET /api/tasks/{id}/comments", h.Comments)
	mux.HandleFunc("POST /api/comments", h.AddComment)
	mux.HandleFunc("DELETE /api/comments/{id}", h.DeleteComment)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTaskInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	task, err := h.data.CreateTask(r.Context(), input)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.data.FetchTasks(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	task, err := h.data.FetchTask(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var input services.UpdateTaskInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	task, err := h.data.UpdateTask(r.Context(), id, input, actorID(r))
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, task)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}
	task, err := h.data.UpdateTaskStatus(r.Context(), id, models.TaskStatus(req.Status), actorID(r))
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	progress, err := h.data.FetchTaskProgress(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, progress)
}

func (h *TaskHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	history, err := h.data.FetchTaskHistory(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, history)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	if err := h.data.DeleteTask(r.Context(), id); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Checklist(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	items, err := h.data.FetchChecklist(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, items)
}

type reorderRequest struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids"`
}

func (h *TaskHandler) ReorderChecklist(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var req reorderRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}
	if err := h.data.ReorderChecklist(r.Context(), id, req.OrderedIDs); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) AddChecklistItem(w http.ResponseWriter, r *http.Request) {
	var input services.CreateChecklistItemInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	item, err := h.data.AddChecklistItem(r.Context(), input)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, item)
}

func (h *TaskHandler) UpdateChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var input services.UpdateChecklistItemInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	item, err := h.data.UpdateChecklistItem(r.Context(), id, input, actorID(r))
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, item)
}

type moveRequest struct {
	NewIndex int `json:"new_index"`
}

func (h *TaskHandler) MoveChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	var req moveRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}
	if err := h.data.MoveChecklistItem(r.Context(), id, req.NewIndex); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) DeleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	if err := h.data.DeleteChecklistItem(r.Context(), id); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	comments, err := h.data.FetchComments(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, comments)
}

func (h *TaskHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCommentInput
	if !decodeBody(w, r, h.logger, &input) {
		return
	}
	comment, err := h.data.AddComment(r.Context(), input)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, comment)
}

func (h *TaskHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", h.logger)
	if !ok {
		return
	}
	if err := h.data.DeleteComment(r.Context(), id); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
