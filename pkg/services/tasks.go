package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/repositories"
)

// CreateTaskInput is the payload for creating a task.
type CreateTaskInput struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description"`
	RoomID      *uuid.UUID `json:"room_id"`
	PositionLat float64    `json:"position_lat"`
	PositionLng float64    `json:"position_lng"`
	CreatedBy   uuid.UUID  `json:"created_by" validate:"required"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
}

// UpdateTaskInput is the payload for updating a task. Nil fields are left
// unchanged. ClearRoom and ClearAssignee distinguish "unset" from "unchanged"
// for the optional references.
type UpdateTaskInput struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	RoomID        *uuid.UUID `json:"room_id"`
	ClearRoom     bool       `json:"clear_room"`
	PositionLat   *float64   `json:"position_lat"`
	PositionLng   *float64   `json:"position_lng"`
	Status        *string    `json:"status"`
	AssignedTo    *uuid.UUID `json:"assigned_to"`
	ClearAssignee bool       `json:"clear_assignee"`
}

// TaskService manages tasks, their workflow status and the status audit
// trail.
type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*models.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context) ([]*models.Task, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Task, error)
	// ListByRoomWithDetails returns the room's tasks with checklist counts
	// and the room name attached.
	ListByRoomWithDetails(ctx context.Context, roomID uuid.UUID) ([]*models.TaskWithDetails, error)
	// Update applies field changes. A status change away from the current
	// value appends one history row attributed to actorID; a same-status
	// write appends none. Entering done stamps CompletedAt, leaving done
	// clears it.
	Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput, actorID uuid.UUID) (*models.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus, actorID uuid.UUID) (*models.Task, error)
	// Progress returns the checklist completion summary of the task.
	Progress(ctx context.Context, id uuid.UUID) (models.TaskProgress, error)
	History(ctx context.Context, id uuid.UUID) ([]*models.TaskHistoryWithNames, error)
	// Delete removes the task, its checklist items and comments. History
	// rows are preserved.
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskService struct {
	tasks      repositories.TaskRepository
	rooms      repositories.RoomRepository
	checklists repositories.ChecklistItemRepository
	comments   repositories.TaskCommentRepository
	history    repositories.TaskHistoryRepository
	logger     *zap.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(
	tasks repositories.TaskRepository,
	rooms repositories.RoomRepository,
	checklists repositories.ChecklistItemRepository,
	comments repositories.TaskCommentRepository,
	history repositories.TaskHistoryRepository,
	logger *zap.Logger,
) TaskService {
	return &taskService{
		tasks:      tasks,
		rooms:      rooms,
		checklists: checklists,
		comments:   comments,
		history:    history,
		logger:     logger,
	}
}

func (s *taskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		RoomID:      input.RoomID,
		PositionLat: input.PositionLat,
		PositionLng: input.PositionLng,
		CreatedBy:   input.CreatedBy,
		AssignedTo:  input.AssignedTo,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("Created task", zap.String("task_id", task.ID.String()))
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context) ([]*models.Task, error) {
	return s.tasks.List(ctx)
}

func (s *taskService) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Task, error) {
	return s.tasks.ListByRoom(ctx, roomID)
}

func (s *taskService) ListByRoomWithDetails(ctx context.Context, roomID uuid.UUID) ([]*models.TaskWithDetails, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	roomTasks, err := s.tasks.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	result := make([]*models.TaskWithDetails, 0, len(roomTasks))
	for _, task := range roomTasks {
		progress, err := checklistProgress(ctx, s.checklists, task.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &models.TaskWithDetails{
			Task:                    *task,
			ChecklistCount:          progress.Total,
			CompletedChecklistCount: progress.Completed,
			RoomName:                room.Name,
		})
	}
	return result, nil
}

// applyStatus transitions the task to status, stamping or clearing
// CompletedAt. It reports whether the status actually changed.
func applyStatus(task *models.Task, status models.TaskStatus) (changed bool, err error) {
	if !status.IsValid() {
		return false, apperrors.InvalidInput("status", "unknown task status")
	}
	if task.Status == status {
		return false, nil
	}
	if status == models.StatusDone {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	task.Status = status
	return true, nil
}

// recordTransition appends the audit row for a status change. Anonymous
// writes fall back to the task creator.
func (s *taskService) recordTransition(ctx context.Context, task *models.Task, old models.TaskStatus, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		actorID = task.CreatedBy
	}
	return s.history.Append(ctx, &models.TaskHistory{
		TaskID:    task.ID,
		UserID:    actorID,
		OldStatus: old,
		NewStatus: task.Status,
	})
}

func (s *taskService) Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput, actorID uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := task.Status

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.InvalidInput("title", "title must not be empty")
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearRoom {
		task.RoomID = nil
	} else if input.RoomID != nil {
		task.RoomID = input.RoomID
	}
	if input.PositionLat != nil {
		task.PositionLat = *input.PositionLat
	}
	if input.PositionLng != nil {
		task.PositionLng = *input.PositionLng
	}
	if input.ClearAssignee {
		task.AssignedTo = nil
	} else if input.AssignedTo != nil {
		task.AssignedTo = input.AssignedTo
	}

	statusChanged := false
	if input.Status != nil {
		statusChanged, err = applyStatus(task, models.TaskStatus(*input.Status))
		if err != nil {
			return nil, err
		}
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	if statusChanged {
		if err := s.recordTransition(ctx, task, oldStatus, actorID); err != nil {
			return nil, err
		}
	}
	return task, nil
}

func (s *taskService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus, actorID uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := task.Status

	changed, err := applyStatus(task, status)
	if err != nil {
		return nil, err
	}
	if !changed {
		return task, nil
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	if err := s.recordTransition(ctx, task, oldStatus, actorID); err != nil {
		return nil, err
	}

	s.logger.Debug("Task status changed",
		zap.String("task_id", id.String()),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(status)),
	)
	return task, nil
}

func (s *taskService) Progress(ctx context.Context, id uuid.UUID) (models.TaskProgress, error) {
	if _, err := s.tasks.GetByID(ctx, id); err != nil {
		return models.TaskProgress{}, err
	}
	return checklistProgress(ctx, s.checklists, id)
}

func (s *taskService) History(ctx context.Context, id uuid.UUID) ([]*models.TaskHistoryWithNames, error) {
	return s.history.ListByTaskWithNames(ctx, id)
}

func (s *taskService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tasks.GetByID(ctx, id); err != nil {
		return err
	}
	if err := deleteTaskCascade(ctx, id, s.tasks, s.checklists, s.comments); err != nil {
		return err
	}
	s.logger.Info("Deleted task", zap.String("task_id", id.String()))
	return nil
}

var _ TaskService = (*taskService)(nil)
