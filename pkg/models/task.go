package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the workflow state shared by tasks and checklist items.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusInProgress TaskStatus = "in_progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusFinalCheck TaskStatus = "final_check"
	StatusDone       TaskStatus = "done"
)

// IsValid reports whether s is a known task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusBlocked, StatusFinalCheck, StatusDone:
		return true
	}
	return false
}

// Task is a unit of work pinned to a position on a floor plan, optionally
// inside a room. PositionLat/PositionLng are floor-plan-local coordinates,
// not geographic ones.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	RoomID      *uuid.UUID `json:"room_id,omitempty"`
	PositionLat float64    `json:"position_lat"`
	PositionLng float64    `json:"position_lng"`
	Status      TaskStatus `json:"status"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
