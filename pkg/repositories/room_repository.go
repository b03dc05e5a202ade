package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
	"github.com/sitedesk/sitedesk-engine/pkg/database"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
)

// RoomRepository defines the interface for room data access.
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListByFloorPlan(ctx context.Context, floorPlanID uuid.UUID) ([]*models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// roomRepository implements RoomRepository using SQLite.
type roomRepository struct{}

// NewRoomRepository creates a new room repository.
func NewRoomRepository() RoomRepository {
	return &roomRepository{}
}

// Create inserts a new room.
func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now
	if room.RoomType == "" {
		room.RoomType = models.RoomOther
	}
	if room.BoundaryCoordinates == "" {
		room.BoundaryCoordinates = "[]"
	}

	query := `
		INSERT INTO rooms (id, floor_plan_id, name, boundary_coordinates, room_type, area_sqm,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := scope.DB.ExecContext(ctx, query,
		room.ID,
		room.FloorPlanID,
		room.Name,
		room.BoundaryCoordinates,
		room.RoomType,
		room.AreaSqm,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

// GetByID retrieves a room by id.
func (r *roomRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `
		SELECT id, floor_plan_id, name, boundary_coordinates, room_type, area_sqm,
			created_at, updated_at
		FROM rooms
		WHERE id = ?`

	var room models.Room
	var area sql.NullFloat64
	err := scope.DB.QueryRowContext(ctx, query, id).Scan(
		&room.ID,
		&room.FloorPlanID,
		&room.Name,
		&room.BoundaryCoordinates,
		&room.RoomType,
		&area,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.CodeRoomNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if area.Valid {
		room.AreaSqm = &area.Float64
	}

	return &room, nil
}

// ListByFloorPlan retrieves a floor plan's rooms, newest first.
func (r *roomRepository) ListByFloorPlan(ctx context.Context, floorPlanID uuid.UUID) ([]*models.Room, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `
		SELECT id, floor_plan_id, name, boundary_coordinates, room_type, area_sqm,
			created_at, updated_at
		FROM rooms
		WHERE floor_plan_id = ?
		ORDER BY created_at DESC`

	rows, err := scope.DB.QueryContext(ctx, query, floorPlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		var room models.Room
		var area sql.NullFloat64
		err := rows.Scan(
			&room.ID,
			&room.FloorPlanID,
			&room.Name,
			&room.BoundaryCoordinates,
			&room.RoomType,
			&area,
			&room.CreatedAt,
			&room.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		if area.Valid {
			room.AreaSqm = &area.Float64
		}
		rooms = append(rooms, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}

	return rooms, nil
}

// Update updates an existing room and refreshes the audit trail.
func (r *roomRepository) Update(ctx context.Context, room *models.Room) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	room.UpdatedAt = time.Now()

	query := `
		UPDATE rooms
		SET name = ?, boundary_coordinates = ?, room_type = ?, area_sqm = ?, updated_at = ?
		WHERE id = ?`

	result, err := scope.DB.ExecContext(ctx, query,
		room.Name,
		room.BoundaryCoordinates,
		room.RoomType,
		room.AreaSqm,
		room.UpdatedAt,
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.CodeRoomNotFound, room.ID.String())
	}

	return nil
}

// Delete removes a room by id.
func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	result, err := scope.DB.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.CodeRoomNotFound, id.String())
	}

	return nil
}

// Ensure roomRepository implements RoomRepository at compile time.
var _ RoomRepository = (*roomRepository)(nil)
