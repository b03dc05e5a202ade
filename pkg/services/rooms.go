package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/repositories"
)

// CreateRoomInput is the payload for creating a room. Boundary is the polygon
// in floor-plan pixel coordinates; it may be empty for a room drawn later.
type CreateRoomInput struct {
	FloorPlanID uuid.UUID      `json:"floor_plan_id" validate:"required"`
	Name        string         `json:"name" validate:"required,min=1,max=200"`
	Boundary    []models.Point `json:"boundary"`
	RoomType    string         `json:"room_type"`
	AreaSqm     *float64       `json:"area_sqm"`
}

// UpdateRoomInput is the payload for updating a room. Nil fields are left
// unchanged.
type UpdateRoomInput struct {
	Name     *string        `json:"name"`
	Boundary []models.Point `json:"boundary"`
	RoomType *string        `json:"room_type"`
	AreaSqm  *float64       `json:"area_sqm"`
}

// RoomService manages rooms and their task completion statistics.
type RoomService interface {
	Create(ctx context.Context, input CreateRoomInput) (*models.Room, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListByFloorPlan(ctx context.Context, floorPlanID uuid.UUID) ([]*models.Room, error)
	// ListByFloorPlanWithStats returns the plan's rooms with task count, done
	// count and the done-over-total percentage.
	ListByFloorPlanWithStats(ctx context.Context, floorPlanID uuid.UUID) ([]*models.RoomWithStats, error)
	GetWithStats(ctx context.Context, id uuid.UUID) (*models.RoomWithStats, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRoomInput) (*models.Room, error)
	// Delete removes the room, its tasks and the tasks' checklist items and
	// comments. Task history is preserved.
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomService struct {
	rooms      repositories.RoomRepository
	tasks      repositories.TaskRepository
	checklists repositories.ChecklistItemRepository
	comments   repositories.TaskCommentRepository
	logger     *zap.Logger
}

// NewRoomService creates a new room service.
func NewRoomService(
	rooms repositories.RoomRepository,
	tasks repositories.TaskRepository,
	checklists repositories.ChecklistItemRepository,
	comments repositories.TaskCommentRepository,
	logger *zap.Logger,
) RoomService {
	return &roomService{
		rooms:      rooms,
		tasks:      tasks,
		checklists: checklists,
		comments:   comments,
		logger:     logger,
	}
}

func (s *roomService) Create(ctx context.Context, input CreateRoomInput) (*models.Room, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	roomType := models.RoomType(input.RoomType)
	if input.RoomType != "" && !roomType.IsValid() {
		return nil, apperrors.InvalidInput("room_type", "unknown room type")
	}

	boundary, err := models.EncodeBoundary(input.Boundary)
	if err != nil {
		return nil, apperrors.InvalidInput("boundary", "boundary does not serialize")
	}

	room := &models.Room{
		FloorPlanID:         input.FloorPlanID,
		Name:                input.Name,
		BoundaryCoordinates: boundary,
		RoomType:            roomType,
		AreaSqm:             input.AreaSqm,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("Created room",
		zap.String("room_id", room.ID.String()),
		zap.String("floor_plan_id", room.FloorPlanID.String()),
	)
	return room, nil
}

func (s *roomService) Get(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *roomService) ListByFloorPlan(ctx context.Context, floorPlanID uuid.UUID) ([]*models.Room, error) {
	return s.rooms.ListByFloorPlan(ctx, floorPlanID)
}

func (s *roomService) roomStats(ctx context.Context, room *models.Room) (*models.RoomWithStats, error) {
	roomTasks, err := s.tasks.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	done := countDoneTasks(roomTasks)
	return &models.RoomWithStats{
		Room:               *room,
		TaskCount:          len(roomTasks),
		CompletedTasks:     done,
		ProgressPercentage: models.ProgressPercentage(done, len(roomTasks)),
	}, nil
}

func (s *roomService) ListByFloorPlanWithStats(ctx context.Context, floorPlanID uuid.UUID) ([]*models.RoomWithStats, error) {
	rooms, err := s.rooms.ListByFloorPlan(ctx, floorPlanID)
	if err != nil {
		return nil, err
	}

	result := make([]*models.RoomWithStats, 0, len(rooms))
	for _, room := range rooms {
		stats, err := s.roomStats(ctx, room)
		if err != nil {
			return nil, err
		}
		result = append(result, stats)
	}
	return result, nil
}

func (s *roomService) GetWithStats(ctx context.Context, id uuid.UUID) (*models.RoomWithStats, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.roomStats(ctx, room)
}

func (s *roomService) Update(ctx context.Context, id uuid.UUID, input UpdateRoomInput) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("name", "name must not be empty")
		}
		room.Name = *input.Name
	}
	if input.Boundary != nil {
		boundary, err := models.EncodeBoundary(input.Boundary)
		if err != nil {
			return nil, apperrors.InvalidInput("boundary", "boundary does not serialize")
		}
		room.BoundaryCoordinates = boundary
	}
	if input.RoomType != nil {
		roomType := models.RoomType(*input.RoomType)
		if !roomType.IsValid() {
			return nil, apperrors.InvalidInput("room_type", "unknown room type")
		}
		room.RoomType = roomType
	}
	if input.AreaSqm != nil {
		room.AreaSqm = input.AreaSqm
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *roomService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.rooms.GetByID(ctx, id); err != nil {
		return err
	}
	if err := deleteRoomCascade(ctx, id, s.rooms, s.tasks, s.checklists, s.comments); err != nil {
		return err
	}
	s.logger.Info("Deleted room", zap.String("room_id", id.String()))
	return nil
}

var _ RoomService = (*roomService)(nil)
