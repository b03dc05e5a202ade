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

// TaskCommentRepository defines the interface for task comment data access.
type TaskCommentRepository interface {
	Create(ctx context.Context, comment *models.TaskComment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TaskComment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskComment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTask(ctx context.Context, taskID uuid.UUID) error
}

// taskCommentRepository implements TaskCommentRepository using SQLite.
type taskCommentRepository struct{}

// NewTaskCommentRepository creates a new task comment repository.
func NewTaskCommentRepository() TaskCommentRepository {
	return &taskCommentRepository{}
}

// Create inserts a new comment.
func (r *taskCommentRepository) Create(ctx context.Context, comment *models.TaskComment) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	query := `
		INSERT INTO task_comments (id, task_id, user_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := scope.DB.ExecContext(ctx, query,
		comment.ID,
		comment.TaskID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by id.
func (r *taskCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TaskComment, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `
		SELECT id, task_id, user_id, content, created_at, updated_at
		FROM task_comments
		WHERE id = ?`

	var comment models.TaskComment
	err := scope.DB.QueryRowContext(ctx, query, id).Scan(
		&comment.ID,
		&comment.TaskID,
		&comment.UserID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.CodeCommentNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// ListByTask retrieves a task's comments, newest first.
func (r *taskCommentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskComment, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `
		SELECT id, task_id, user_id, content, created_at, updated_at
		FROM task_comments
		WHERE task_id = ?
		ORDER BY created_at DESC`

	rows, err := scope.DB.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.TaskComment
	for rows.Next() {
		var comment models.TaskComment
		err := rows.Scan(
			&comment.ID,
			&comment.TaskID,
			&comment.UserID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// Delete removes a comment by id.
func (r *taskCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	result, err := scope.DB.ExecContext(ctx, `DELETE FROM task_comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.CodeCommentNotFound, id.String())
	}

	return nil
}

// DeleteByTask removes all comments of a task (task-delete cascade).
func (r *taskCommentRepository) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	_, err := scope.DB.ExecContext(ctx, `DELETE FROM task_comments WHERE task_id = ?`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	return nil
}

// Ensure taskCommentRepository implements TaskCommentRepository at compile time.
var _ TaskCommentRepository = (*taskCommentRepository)(nil)
