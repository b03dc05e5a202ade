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

// nullUUID adapts an optional uuid reference for binding.
func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// nullTime adapts an optional timestamp for binding.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// TaskRepository defines the interface for task data access.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context) ([]*models.Task, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// taskRepository implements TaskRepository using SQLite.
type taskRepository struct{}

// NewTaskRepository creates a new task repository.
func NewTaskRepository() TaskRepository {
	return &taskRepository{}
}

const taskColumns = `id, title, description, room_id, position_lat, position_lng, status,
	created_by, assigned_to, completed_at, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	var task models.Task
	var roomID, assignedTo uuid.NullUUID
	var completedAt sql.NullTime
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&roomID,
		&task.PositionLat,
		&task.PositionLng,
		&task.Status,
		&task.CreatedBy,
		&assignedTo,
		&completedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if roomID.Valid {
		task.RoomID = &roomID.UUID
	}
	if assignedTo.Valid {
		task.AssignedTo = &assignedTo.UUID
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	return &task, nil
}

// Create inserts a new task.
func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = models.StatusNotStarted
	}

	query := `
		INSERT INTO tasks (id, title, description, room_id, position_lat, position_lng, status,
			created_by, assigned_to, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := scope.DB.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		nullUUID(task.RoomID),
		task.PositionLat,
		task.PositionLng,
		task.Status,
		task.CreatedBy,
		nullUUID(task.AssignedTo),
		nullTime(task.CompletedAt),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by id.
func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	task, err := scanTask(scope.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.CodeTaskNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// List retrieves all tasks, newest first.
func (r *taskRepository) List(ctx context.Context) ([]*models.Task, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC`

	rows, err := scope.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// ListByRoom retrieves a room's tasks, newest first.
func (r *taskRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Task, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE room_id = ? ORDER BY created_at DESC`

	rows, err := scope.DB.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]*models.Task, error) {
	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// Update updates an existing task and refreshes the audit trail.
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	task.UpdatedAt = time.Now()

	query := `
		UPDATE tasks
		SET title = ?, description = ?, room_id = ?, position_lat = ?, position_lng = ?,
			status = ?, assigned_to = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`

	result, err := scope.DB.ExecContext(ctx, query,
		task.Title,
		task.Description,
		nullUUID(task.RoomID),
		task.PositionLat,
		task.PositionLng,
		task.Status,
		nullUUID(task.AssignedTo),
		nullTime(task.CompletedAt),
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.CodeTaskNotFound, task.ID.String())
	}

	return nil
}

// Delete removes a task by id. Checklist items and comments are removed by
// the service layer's cascade; history rows are preserved.
func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	result, err := scope.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.CodeTaskNotFound, id.String())
	}

	return nil
}

// Ensure taskRepository implements TaskRepository at compile time.
var _ TaskRepository = (*taskRepository)(nil)
