package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/repositories"
)

// CreateChecklistItemInput is the payload for adding a checklist item. A nil
// OrderIndex appends the item after the current last one; an explicit index
// inserts at that position, shifting the items behind it.
type CreateChecklistItemInput struct {
	TaskID      uuid.UUID `json:"task_id" validate:"required"`
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description"`
	OrderIndex  *int      `json:"order_index"`
}

// UpdateChecklistItemInput is the payload for updating a checklist item. Nil
// fields are left unchanged.
type UpdateChecklistItemInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ChecklistService manages a task's checklist. Order indexes are kept dense,
// 0..n-1 with no gaps or duplicates, across create, delete, move and reorder.
type ChecklistService interface {
	AddItem(ctx context.Context, input CreateChecklistItemInput) (*models.ChecklistItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.ChecklistItem, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.ChecklistItem, error)
	// UpdateItem applies field changes. A status change appends one task
	// history row tagged with the item's id and title; entering done stamps
	// the item's CompletedAt and leaving done clears it.
	UpdateItem(ctx context.Context, id uuid.UUID, input UpdateChecklistItemInput, actorID uuid.UUID) (*models.ChecklistItem, error)
	// Reorder applies a full new ranking. orderedIDs must be a permutation
	// of the task's current item ids.
	Reorder(ctx context.Context, taskID uuid.UUID, orderedIDs []uuid.UUID) error
	// MoveItem moves one item to newIndex, shifting its neighbors. Indexes
	// out of range are clamped.
	MoveItem(ctx context.Context, id uuid.UUID, newIndex int) error
	// DeleteItem removes the item and compacts the remaining indexes.
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type checklistService struct {
	checklists repositories.ChecklistItemRepository
	tasks      repositories.TaskRepository
	history    repositories.TaskHistoryRepository
	logger     *zap.Logger
}

// NewChecklistService creates a new checklist service.
func NewChecklistService(
	checklists repositories.ChecklistItemRepository,
	tasks repositories.TaskRepository,
	history repositories.TaskHistoryRepository,
	logger *zap.Logger,
) ChecklistService {
	return &checklistService{
		checklists: checklists,
		tasks:      tasks,
		history:    history,
		logger:     logger,
	}
}

func (s *checklistService) AddItem(ctx context.Context, input CreateChecklistItemInput) (*models.ChecklistItem, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.OrderIndex != nil && *input.OrderIndex < 0 {
		return nil, apperrors.InvalidInput("order_index", "order index must not be negative")
	}

	// Always append first, then move into place. Inserting the raw index
	// directly would leave gaps or duplicates next to its neighbors.
	item := &models.ChecklistItem{
		TaskID:      input.TaskID,
		Title:       input.Title,
		Description: input.Description,
		OrderIndex:  -1,
	}
	if err := s.checklists.Create(ctx, item); err != nil {
		return nil, err
	}

	if input.OrderIndex != nil {
		if err := s.MoveItem(ctx, item.ID, *input.OrderIndex); err != nil {
			return nil, err
		}
		return s.checklists.GetByID(ctx, item.ID)
	}
	return item, nil
}

func (s *checklistService) GetItem(ctx context.Context, id uuid.UUID) (*models.ChecklistItem, error) {
	return s.checklists.GetByID(ctx, id)
}

func (s *checklistService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.ChecklistItem, error) {
	return s.checklists.ListByTask(ctx, taskID)
}

func (s *checklistService) UpdateItem(ctx context.Context, id uuid.UUID, input UpdateChecklistItemInput, actorID uuid.UUID) (*models.ChecklistItem, error) {
	item, err := s.checklists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := item.Status

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.InvalidInput("title", "title must not be empty")
		}
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}

	statusChanged := false
	if input.Status != nil {
		status := models.TaskStatus(*input.Status)
		if !status.IsValid() {
			return nil, apperrors.InvalidInput("status", "unknown checklist item status")
		}
		if status != item.Status {
			statusChanged = true
			if status == models.StatusDone {
				now := time.Now()
				item.CompletedAt = &now
			} else {
				item.CompletedAt = nil
			}
			item.Status = status
		}
	}

	if err := s.checklists.Update(ctx, item); err != nil {
		return nil, err
	}

	if statusChanged {
		if actorID == uuid.Nil {
			task, err := s.tasks.GetByID(ctx, item.TaskID)
			if err != nil {
				return nil, err
			}
			actorID = task.CreatedBy
		}
		err := s.history.Append(ctx, &models.TaskHistory{
			TaskID:            item.TaskID,
			UserID:            actorID,
			OldStatus:         oldStatus,
			NewStatus:         item.Status,
			ChecklistItemID:   &item.ID,
			ChecklistItemName: &item.Title,
		})
		if err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (s *checklistService) Reorder(ctx context.Context, taskID uuid.UUID, orderedIDs []uuid.UUID) error {
	items, err := s.checklists.ListByTask(ctx, taskID)
	if err != nil {
		return err
	}

	current := lo.Map(items, func(item *models.ChecklistItem, _ int) uuid.UUID { return item.ID })
	if len(orderedIDs) != len(current) {
		return apperrors.InvalidInput("ordered_ids", "ordered ids must cover every checklist item exactly once")
	}
	missing, extra := lo.Difference(current, orderedIDs)
	if len(missing) > 0 || len(extra) > 0 {
		return apperrors.InvalidInput("ordered_ids", "ordered ids must be a permutation of the task's checklist")
	}

	return s.checklists.SetOrderIndexes(ctx, taskID, orderedIDs)
}

func (s *checklistService) MoveItem(ctx context.Context, id uuid.UUID, newIndex int) error {
	item, err := s.checklists.GetByID(ctx, id)
	if err != nil {
		return err
	}

	items, err := s.checklists.ListByTask(ctx, item.TaskID)
	if err != nil {
		return err
	}

	ordered := lo.Reject(
		lo.Map(items, func(it *models.ChecklistItem, _ int) uuid.UUID { return it.ID }),
		func(itemID uuid.UUID, _ int) bool { return itemID == id },
	)

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(ordered) {
		newIndex = len(ordered)
	}
	ordered = append(ordered[:newIndex], append([]uuid.UUID{id}, ordered[newIndex:]...)...)

	return s.checklists.SetOrderIndexes(ctx, item.TaskID, ordered)
}

func (s *checklistService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.checklists.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checklists.Delete(ctx, id); err != nil {
		return err
	}

	// Compact: the survivors keep their relative order under fresh dense
	// indexes.
	remaining, err := s.checklists.ListByTask(ctx, item.TaskID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return nil
	}
	ordered := lo.Map(remaining, func(it *models.ChecklistItem, _ int) uuid.UUID { return it.ID })
	return s.checklists.SetOrderIndexes(ctx, item.TaskID, ordered)
}

var _ ChecklistService = (*checklistService)(nil)
