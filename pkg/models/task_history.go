package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskHistory is one status transition in a task's audit timeline. The log is
// append-only: rows are never updated and survive deletion of their task.
// Checklist-item transitions carry the item's id and name so the timeline can
// label them after the item is gone.
type TaskHistory struct {
	ID                uuid.UUID  `json:"id"`
	TaskID            uuid.UUID  `json:"task_id"`
	UserID            uuid.UUID  `json:"user_id"`
	OldStatus         TaskStatus `json:"old_status"`
	NewStatus         TaskStatus `json:"new_status"`
	ChecklistItemID   *uuid.UUID `json:"checklist_item_id,omitempty"`
	ChecklistItemName *string    `json:"checklist_item_name,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TaskHistoryWithNames enriches a history row with the acting user's display
// name for the timeline view.
type TaskHistoryWithNames struct {
	TaskHistory
	UserName string `json:"user_name"`
}
