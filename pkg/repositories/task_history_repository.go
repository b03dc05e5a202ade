package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sitedesk/sitedesk-engine/pkg/database"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
)

// TaskHistoryRepository defines the interface for the append-only status
// audit log. There are no update or delete operations: history rows outlive
// their task.
type TaskHistoryRepository interface {
	Append(ctx context.Context, entry *models.TaskHistory) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskHistory, error)
	// ListByTaskWithNames joins the acting user's display name onto each
	// entry for the timeline view. Entries whose user row is gone keep an
	// empty name.
	ListByTaskWithNames(ctx context.Context, taskID uuid.UUID) ([]*models.TaskHistoryWithNames, error)
}

// taskHistoryRepository implements TaskHistoryRepository using SQLite.
type taskHistoryRepository struct{}

// NewTaskHistoryRepository creates a new task history repository.
func NewTaskHistoryRepository() TaskHistoryRepository {
	return &taskHistoryRepository{}
}

// Append inserts one status transition record.
func (r *taskHistoryRepository) Append(ctx context.Context, entry *models.TaskHistory) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	var itemName sql.NullString
	if entry.ChecklistItemName != nil {
		itemName = sql.NullString{String: *entry.ChecklistItemName, Valid: true}
	}

	query := `
		INSERT INTO task_history (id, task_id, user_id, old_status, new_status,
			checklist_item_id, checklist_item_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := scope.DB.ExecContext(ctx, query,
		entry.ID,
		entry.TaskID,
		entry.UserID,
		entry.OldStatus,
		entry.NewStatus,
		nullUUID(entry.ChecklistItemID),
		itemName,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append task history: %w", err)
	}

	return nil
}

const historyColumns = `id, task_id, user_id, old_status, new_status, checklist_item_id,
	checklist_item_name, created_at, updated_at`

func scanHistory(row interface{ Scan(...any) error }, extra ...any) (*models.TaskHistory, error) {
	var entry models.TaskHistory
	var itemID uuid.NullUUID
	var itemName sql.NullString
	dest := []any{
		&entry.ID,
		&entry.TaskID,
		&entry.UserID,
		&entry.OldStatus,
		&entry.NewStatus,
		&itemID,
		&itemName,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if itemID.Valid {
		entry.ChecklistItemID = &itemID.UUID
	}
	if itemName.Valid {
		entry.ChecklistItemName = &itemName.String
	}
	return &entry, nil
}

// ListByTask retrieves a task's history, newest first.
func (r *taskHistoryRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskHistory, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `SELECT ` + historyColumns + ` FROM task_history WHERE task_id = ? ORDER BY created_at DESC`

	rows, err := scope.DB.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task history: %w", err)
	}
	defer rows.Close()

	var entries []*models.TaskHistory
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task history: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task history: %w", err)
	}

	return entries, nil
}

// ListByTaskWithNames retrieves a task's history with user display names,
// newest first.
func (r *taskHistoryRepository) ListByTaskWithNames(ctx context.Context, taskID uuid.UUID) ([]*models.TaskHistoryWithNames, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `
		SELECT h.id, h.task_id, h.user_id, h.old_status, h.new_status, h.checklist_item_id,
			h.checklist_item_name, h.created_at, h.updated_at, COALESCE(u.name, '')
		FROM task_history h
		LEFT JOIN users u ON u.id = h.user_id
		WHERE h.task_id = ?
		ORDER BY h.created_at DESC`

	rows, err := scope.DB.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task history: %w", err)
	}
	defer rows.Close()

	var entries []*models.TaskHistoryWithNames
	for rows.Next() {
		var userName string
		entry, err := scanHistory(rows, &userName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task history: %w", err)
		}
		entries = append(entries, &models.TaskHistoryWithNames{TaskHistory: *entry, UserName: userName})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task history: %w", err)
	}

	return entries, nil
}

// Ensure taskHistoryRepository implements TaskHistoryRepository at compile time.
var _ TaskHistoryRepository = (*taskHistoryRepository)(nil)
