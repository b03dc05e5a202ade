package models

import (
	"time"

	"github.com/google/uuid"
)

// ChecklistItem is a sub-step of a task. OrderIndex is a dense 0-based rank
// unique within the task; consumers render strictly by OrderIndex ascending
// and rely on density for drag-reorder math.
type ChecklistItem struct {
	ID          uuid.UUID  `json:"id"`
	TaskID      uuid.UUID  `json:"task_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	OrderIndex  int        `json:"order_index"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
