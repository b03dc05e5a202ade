package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/repositories"
)

// Statistics are recomputed from the store on every read. The datasets are
// per-user and small, so the fan-out queries stay cheap and the numbers are
// never stale.

// checklistProgress summarizes a task's checklist completion.
func checklistProgress(ctx context.Context, checklists repositories.ChecklistItemRepository, taskID uuid.UUID) (models.TaskProgress, error) {
	items, err := checklists.ListByTask(ctx, taskID)
	if err != nil {
		return models.TaskProgress{}, err
	}
	completed := lo.CountBy(items, func(item *models.ChecklistItem) bool {
		return item.Status == models.StatusDone
	})
	return models.TaskProgress{
		Completed:  completed,
		Total:      len(items),
		Percentage: models.ProgressPercentage(completed, len(items)),
	}, nil
}

// collectProjectTasks walks project -> floor plans -> rooms -> tasks and
// returns every task reachable from the project.
func collectProjectTasks(ctx context.Context, projectID uuid.UUID,
	plans repositories.FloorPlanRepository,
	rooms repositories.RoomRepository,
	tasks repositories.TaskRepository,
) ([]*models.Task, error) {
	projectPlans, err := plans.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var all []*models.Task
	for _, plan := range projectPlans {
		planRooms, err := rooms.ListByFloorPlan(ctx, plan.ID)
		if err != nil {
			return nil, err
		}
		for _, room := range planRooms {
			roomTasks, err := tasks.ListByRoom(ctx, room.ID)
			if err != nil {
				return nil, err
			}
			all = append(all, roomTasks...)
		}
	}
	return all, nil
}

func countDoneTasks(tasks []*models.Task) int {
	return lo.CountBy(tasks, func(task *models.Task) bool {
		return task.Status == models.StatusDone
	})
}
