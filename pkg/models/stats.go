package models

import "math"

// ProgressPercentage converts completed/total into an integer percentage.
// Defined as 0 when total is 0; never divides by zero.
func ProgressPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// TaskProgress is the checklist completion summary of one task.
type TaskProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ProjectWithStats is a project enriched with task counts at query time.
// Progress is the mean of each task's own checklist percentage, which is
// deliberately distinct from the room-level done/total ratio.
type ProjectWithStats struct {
	Project
	TaskCount int `json:"taskCount"`
	Progress  int `json:"progress"`
}

// FloorPlanWithStats is a floor plan enriched with room and task counts.
type FloorPlanWithStats struct {
	FloorPlan
	RoomCount      int `json:"roomCount"`
	TaskCount      int `json:"taskCount"`
	CompletedTasks int `json:"completedTasks"`
}

// RoomWithStats is a room enriched with its task completion ratio.
// ProgressPercentage is done tasks over total tasks.
type RoomWithStats struct {
	Room
	TaskCount          int `json:"task_count"`
	CompletedTasks     int `json:"completed_tasks"`
	ProgressPercentage int `json:"progress_percentage"`
}

// TaskWithDetails is a task enriched with checklist counts and the name of
// its room, for list and kanban views.
type TaskWithDetails struct {
	Task
	ChecklistCount          int    `json:"checklist_count"`
	CompletedChecklistCount int    `json:"completed_checklist_count"`
	RoomName                string `json:"room_name,omitempty"`
}
