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

// ChecklistItemRepository defines the interface for checklist item data
// access.
type ChecklistItemRepository interface {
	Create(ctx context.Context, item *models.ChecklistItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ChecklistItem, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.ChecklistItem, error)
	Update(ctx context.Context, item *models.ChecklistItem) error
	// SetOrderIndexes applies a new dense ranking in one transaction, so a
	// reorder never leaves the task with duplicate or gapped indices.
	SetOrderIndexes(ctx context.Context, taskID uuid.UUID, orderedIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTask(ctx context.Context, taskID uuid.UUID) error
}

// checklistItemRepository implements ChecklistItemRepository using SQLite.
type checklistItemRepository struct{}

// NewChecklistItemRepository creates a new checklist item repository.
func NewChecklistItemRepository() ChecklistItemRepository {
	return &checklistItemRepository{}
}

const checklistColumns = `id, task_id, title, description, status, order_index, completed_at,
	created_at, updated_at`

func scanChecklistItem(row interface{ Scan(...any) error }) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	var completedAt sql.NullTime
	err := row.Scan(
		&item.ID,
		&item.TaskID,
		&item.Title,
		&item.Description,
		&item.Status,
		&item.OrderIndex,
		&completedAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		item.CompletedAt = &completedAt.Time
	}
	return &item, nil
}

// Create inserts a new checklist item. When OrderIndex is negative the item
// is appended after the task's current last index.
func (r *checklistItemRepository) Create(ctx context.Context, item *models.ChecklistItem) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Status == "" {
		item.Status = models.StatusNotStarted
	}

	if item.OrderIndex < 0 {
		var next int
		err := scope.DB.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(order_index) + 1, 0) FROM checklist_items WHERE task_id = ?`,
			item.TaskID).Scan(&next)
		if err != nil {
			return fmt.Errorf("failed to determine order index: %w", err)
		}
		item.OrderIndex = next
	}

	query := `
		INSERT INTO checklist_items (id, task_id, title, description, status, order_index,
			completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := scope.DB.ExecContext(ctx, query,
		item.ID,
		item.TaskID,
		item.Title,
		item.Description,
		item.Status,
		item.OrderIndex,
		nullTime(item.CompletedAt),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create checklist item: %w", err)
	}

	return nil
}

// GetByID retrieves a checklist item by id.
func (r *checklistItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ChecklistItem, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `SELECT ` + checklistColumns + ` FROM checklist_items WHERE id = ?`

	item, err := scanChecklistItem(scope.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.CodeChecklistItemNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get checklist item: %w", err)
	}

	return item, nil
}

// ListByTask retrieves a task's checklist sorted by order index ascending.
func (r *checklistItemRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.ChecklistItem, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `SELECT ` + checklistColumns + ` FROM checklist_items WHERE task_id = ? ORDER BY order_index`

	rows, err := scope.DB.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	defer rows.Close()

	var items []*models.ChecklistItem
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checklist items: %w", err)
	}

	return items, nil
}

// Update updates an existing checklist item and refreshes the audit trail.
func (r *checklistItemRepository) Update(ctx context.Context, item *models.ChecklistItem) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	item.UpdatedAt = time.Now()

	query := `
		UPDATE checklist_items
		SET title = ?, description = ?, status = ?, order_index = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`

	result, err := scope.DB.ExecContext(ctx, query,
		item.Title,
		item.Description,
		item.Status,
		item.OrderIndex,
		nullTime(item.CompletedAt),
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.CodeChecklistItemNotFound, item.ID.String())
	}

	return nil
}

// SetOrderIndexes assigns order_index = position for every id in orderedIDs,
// atomically.
func (r *checklistItemRepository) SetOrderIndexes(ctx context.Context, taskID uuid.UUID, orderedIDs []uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	tx, err := scope.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now()
	for position, id := range orderedIDs {
		var result sql.Result
		result, err = tx.ExecContext(ctx,
			`UPDATE checklist_items SET order_index = ?, updated_at = ? WHERE id = ? AND task_id = ?`,
			position, now, id, taskID)
		if err != nil {
			return fmt.Errorf("failed to reorder checklist item: %w", err)
		}
		var affected int64
		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to reorder checklist item: %w", err)
		}
		if affected == 0 {
			err = apperrors.NotFound(apperrors.CodeChecklistItemNotFound, id.String())
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}

	return nil
}

// Delete removes a checklist item by id.
func (r *checklistItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	result, err := scope.DB.ExecContext(ctx, `DELETE FROM checklist_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.CodeChecklistItemNotFound, id.String())
	}

	return nil
}

// DeleteByTask removes all checklist items of a task (task-delete cascade).
func (r *checklistItemRepository) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	_, err := scope.DB.ExecContext(ctx, `DELETE FROM checklist_items WHERE task_id = ?`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete checklist items: %w", err)
	}

	return nil
}

// Ensure checklistItemRepository implements ChecklistItemRepository at compile time.
var _ ChecklistItemRepository = (*checklistItemRepository)(nil)
