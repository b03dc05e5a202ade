package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/repositories"
)

// CreateFloorPlanInput is the payload for creating a floor plan.
type CreateFloorPlanInput struct {
	ProjectID           uuid.UUID `json:"project_id" validate:"required"`
	Name                string    `json:"name" validate:"required,min=1,max=200"`
	ImageURL            string    `json:"image_url" validate:"required"`
	ImageWidth          int       `json:"image_width" validate:"gt=0"`
	ImageHeight         int       `json:"image_height" validate:"gt=0"`
	ScalePixelsPerMeter float64   `json:"scale_pixels_per_meter" validate:"gt=0"`
	FloorLevel          int       `json:"floor_level"`
}

// UpdateFloorPlanInput is the payload for updating a floor plan. Nil fields
// are left unchanged.
type UpdateFloorPlanInput struct {
	Name                *string  `json:"name"`
	ImageURL            *string  `json:"image_url"`
	ImageWidth          *int     `json:"image_width"`
	ImageHeight         *int     `json:"image_height"`
	ScalePixelsPerMeter *float64 `json:"scale_pixels_per_meter"`
	FloorLevel          *int     `json:"floor_level"`
}

// FloorPlanService manages floor plans and their aggregate statistics.
type FloorPlanService interface {
	Create(ctx context.Context, input CreateFloorPlanInput) (*models.FloorPlan, error)
	Get(ctx context.Context, id uuid.UUID) (*models.FloorPlan, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.FloorPlan, error)
	// ListByProjectWithStats returns the project's floor plans with room
	// count, task count and done-task count.
	ListByProjectWithStats(ctx context.Context, projectID uuid.UUID) ([]*models.FloorPlanWithStats, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateFloorPlanInput) (*models.FloorPlan, error)
	// Delete removes the plan, its rooms, their tasks and the tasks'
	// checklist items and comments. Task history is preserved.
	Delete(ctx context.Context, id uuid.UUID) error
}

type floorPlanService struct {
	plans      repositories.FloorPlanRepository
	rooms      repositories.RoomRepository
	tasks      repositories.TaskRepository
	checklists repositories.ChecklistItemRepository
	comments   repositories.TaskCommentRepository
	logger     *zap.Logger
}

// NewFloorPlanService creates a new floor plan service.
func NewFloorPlanService(
	plans repositories.FloorPlanRepository,
	rooms repositories.RoomRepository,
	tasks repositories.TaskRepository,
	checklists repositories.ChecklistItemRepository,
	comments repositories.TaskCommentRepository,
	logger *zap.Logger,
) FloorPlanService {
	return &floorPlanService{
		plans:      plans,
		rooms:      rooms,
		tasks:      tasks,
		checklists: checklists,
		comments:   comments,
		logger:     logger,
	}
}

func (s *floorPlanService) Create(ctx context.Context, input CreateFloorPlanInput) (*models.FloorPlan, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	plan := &models.FloorPlan{
		ProjectID:           input.ProjectID,
		Name:                input.Name,
		ImageURL:            input.ImageURL,
		ImageWidth:          input.ImageWidth,
		ImageHeight:         input.ImageHeight,
		ScalePixelsPerMeter: input.ScalePixelsPerMeter,
		FloorLevel:          input.FloorLevel,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info("Created floor plan",
		zap.String("floor_plan_id", plan.ID.String()),
		zap.String("project_id", plan.ProjectID.String()),
	)
	return plan, nil
}

func (s *floorPlanService) Get(ctx context.Context, id uuid.UUID) (*models.FloorPlan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *floorPlanService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.FloorPlan, error) {
	return s.plans.ListByProject(ctx, projectID)
}

func (s *floorPlanService) ListByProjectWithStats(ctx context.Context, projectID uuid.UUID) ([]*models.FloorPlanWithStats, error) {
	plans, err := s.plans.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	result := make([]*models.FloorPlanWithStats, 0, len(plans))
	for _, plan := range plans {
		planRooms, err := s.rooms.ListByFloorPlan(ctx, plan.ID)
		if err != nil {
			return nil, err
		}

		taskCount, completedTasks := 0, 0
		for _, room := range planRooms {
			roomTasks, err := s.tasks.ListByRoom(ctx, room.ID)
			if err != nil {
				return nil, err
			}
			taskCount += len(roomTasks)
			completedTasks += countDoneTasks(roomTasks)
		}

		result = append(result, &models.FloorPlanWithStats{
			FloorPlan:      *plan,
			RoomCount:      len(planRooms),
			TaskCount:      taskCount,
			CompletedTasks: completedTasks,
		})
	}
	return result, nil
}

func (s *floorPlanService) Update(ctx context.Context, id uuid.UUID, input UpdateFloorPlanInput) (*models.FloorPlan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.ImageURL != nil {
		plan.ImageURL = *input.ImageURL
	}
	if input.ImageWidth != nil {
		if *input.ImageWidth <= 0 {
			return nil, apperrors.InvalidInput("image_width", "image width must be positive")
		}
		plan.ImageWidth = *input.ImageWidth
	}
	if input.ImageHeight != nil {
		if *input.ImageHeight <= 0 {
			return nil, apperrors.InvalidInput("image_height", "image height must be positive")
		}
		plan.ImageHeight = *input.ImageHeight
	}
	if input.ScalePixelsPerMeter != nil {
		if *input.ScalePixelsPerMeter <= 0 {
			return nil, apperrors.InvalidInput("scale_pixels_per_meter", "scale must be positive")
		}
		plan.ScalePixelsPerMeter = *input.ScalePixelsPerMeter
	}
	if input.FloorLevel != nil {
		plan.FloorLevel = *input.FloorLevel
	}

	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *floorPlanService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.plans.GetByID(ctx, id); err != nil {
		return err
	}
	if err := deleteFloorPlanCascade(ctx, id, s.plans, s.rooms, s.tasks, s.checklists, s.comments); err != nil {
		return err
	}
	s.logger.Info("Deleted floor plan", zap.String("floor_plan_id", id.String()))
	return nil
}

var _ FloorPlanService = (*floorPlanService)(nil)
