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

// FloorPlanRepository defines the interface for floor plan data access.
type FloorPlanRepository interface {
	Create(ctx context.Context, plan *models.FloorPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FloorPlan, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.FloorPlan, error)
	Update(ctx context.Context, plan *models.FloorPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// floorPlanRepository implements FloorPlanRepository using SQLite.
type floorPlanRepository struct{}

// NewFloorPlanRepository creates a new floor plan repository.
func NewFloorPlanRepository() FloorPlanRepository {
	return &floorPlanRepository{}
}

// Create inserts a new floor plan.
func (r *floorPlanRepository) Create(ctx context.Context, plan *models.FloorPlan) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	query := `
		INSERT INTO floor_plans (id, project_id, name, image_url, image_width, image_height,
			scale_pixels_per_meter, floor_level, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := scope.DB.ExecContext(ctx, query,
		plan.ID,
		plan.ProjectID,
		plan.Name,
		plan.ImageURL,
		plan.ImageWidth,
		plan.ImageHeight,
		plan.ScalePixelsPerMeter,
		plan.FloorLevel,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create floor plan: %w", err)
	}

	return nil
}

// GetByID retrieves a floor plan by id.
func (r *floorPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FloorPlan, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `
		SELECT id, project_id, name, image_url, image_width, image_height,
			scale_pixels_per_meter, floor_level, created_at, updated_at
		FROM floor_plans
		WHERE id = ?`

	var plan models.FloorPlan
	err := scope.DB.QueryRowContext(ctx, query, id).Scan(
		&plan.ID,
		&plan.ProjectID,
		&plan.Name,
		&plan.ImageURL,
		&plan.ImageWidth,
		&plan.ImageHeight,
		&plan.ScalePixelsPerMeter,
		&plan.FloorLevel,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.CodeFloorPlanNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get floor plan: %w", err)
	}

	return &plan, nil
}

// ListByProject retrieves a project's floor plans ordered by floor level.
func (r *floorPlanRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.FloorPlan, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `
		SELECT id, project_id, name, image_url, image_width, image_height,
			scale_pixels_per_meter, floor_level, created_at, updated_at
		FROM floor_plans
		WHERE project_id = ?
		ORDER BY floor_level, created_at DESC`

	rows, err := scope.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list floor plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.FloorPlan
	for rows.Next() {
		var plan models.FloorPlan
		err := rows.Scan(
			&plan.ID,
			&plan.ProjectID,
			&plan.Name,
			&plan.ImageURL,
			&plan.ImageWidth,
			&plan.ImageHeight,
			&plan.ScalePixelsPerMeter,
			&plan.FloorLevel,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan floor plan: %w", err)
		}
		plans = append(plans, &plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating floor plans: %w", err)
	}

	return plans, nil
}

// Update updates an existing floor plan and refreshes the audit trail.
func (r *floorPlanRepository) Update(ctx context.Context, plan *models.FloorPlan) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	plan.UpdatedAt = time.Now()

	query := `
		UPDATE floor_plans
		SET name = ?, image_url = ?, image_width = ?, image_height = ?,
			scale_pixels_per_meter = ?, floor_level = ?, updated_at = ?
		WHERE id = ?`

	result, err := scope.DB.ExecContext(ctx, query,
		plan.Name,
		plan.ImageURL,
		plan.ImageWidth,
		plan.ImageHeight,
		plan.ScalePixelsPerMeter,
		plan.FloorLevel,
		plan.UpdatedAt,
		plan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update floor plan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update floor plan: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.CodeFloorPlanNotFound, plan.ID.String())
	}

	return nil
}

// Delete removes a floor plan by id.
func (r *floorPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	result, err := scope.DB.ExecContext(ctx, `DELETE FROM floor_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete floor plan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete floor plan: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.CodeFloorPlanNotFound, id.String())
	}

	return nil
}

// Ensure floorPlanRepository implements FloorPlanRepository at compile time.
var _ FloorPlanRepository = (*floorPlanRepository)(nil)
