package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/sitedesk/sitedesk-engine/pkg/repositories"
)

// Cascade deletes are explicit fan-out, one level at a time, so each layer's
// rules apply and task history survives every branch.

func deleteTaskCascade(ctx context.Context, taskID uuid.UUID,
	tasks repositories.TaskRepository,
	checklists repositories.ChecklistItemRepository,
	comments repositories.TaskCommentRepository,
) error {
	if err := checklists.DeleteByTask(ctx, taskID); err != nil {
		return err
	}
	if err := comments.DeleteByTask(ctx, taskID); err != nil {
		return err
	}
	// History rows are left in place: the audit trail outlives the task.
	return tasks.Delete(ctx, taskID)
}

func deleteRoomCascade(ctx context.Context, roomID uuid.UUID,
	rooms repositories.RoomRepository,
	tasks repositories.TaskRepository,
	checklists repositories.ChecklistItemRepository,
	comments repositories.TaskCommentRepository,
) error {
	roomTasks, err := tasks.ListByRoom(ctx, roomID)
	if err != nil {
		return err
	}
	for _, task := range roomTasks {
		if err := deleteTaskCascade(ctx, task.ID, tasks, checklists, comments); err != nil {
			return err
		}
	}
	return rooms.Delete(ctx, roomID)
}

func deleteFloorPlanCascade(ctx context.Context, planID uuid.UUID,
	plans repositories.FloorPlanRepository,
	rooms repositories.RoomRepository,
	tasks repositories.TaskRepository,
	checklists repositories.ChecklistItemRepository,
	comments repositories.TaskCommentRepository,
) error {
	planRooms, err := rooms.ListByFloorPlan(ctx, planID)
	if err != nil {
		return err
	}
	for _, room := range planRooms {
		if err := deleteRoomCascade(ctx, room.ID, rooms, tasks, checklists, comments); err != nil {
			return err
		}
	}
	return plans.Delete(ctx, planID)
}
