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

// ProjectUserRepository defines the interface for project membership data
// access.
type ProjectUserRepository interface {
	Create(ctx context.Context, member *models.ProjectUser) error
	GetByProjectAndUser(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectUser, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectUser, error)
	UpdateRole(ctx context.Context, projectID, userID uuid.UUID, role models.Role) error
	Delete(ctx context.Context, projectID, userID uuid.UUID) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

// projectUserRepository implements ProjectUserRepository using SQLite.
type projectUserRepository struct{}

// NewProjectUserRepository creates a new project membership repository.
func NewProjectUserRepository() ProjectUserRepository {
	return &projectUserRepository{}
}

// Create adds a user to a project. The (project, user) pair is unique.
func (r *projectUserRepository) Create(ctx context.Context, member *models.ProjectUser) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now
	if member.Role == "" {
		member.Role = models.RoleMember
	}

	query := `
		INSERT INTO project_users (id, project_id, user_id, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := scope.DB.ExecContext(ctx, query,
		member.ID,
		member.ProjectID,
		member.UserID,
		member.Role,
		member.CreatedAt,
		member.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("project user", "user_id", member.UserID.String())
		}
		return fmt.Errorf("failed to add project user: %w", err)
	}

	return nil
}

// GetByProjectAndUser retrieves a membership row.
func (r *projectUserRepository) GetByProjectAndUser(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectUser, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `
		SELECT id, project_id, user_id, role, created_at, updated_at
		FROM project_users
		WHERE project_id = ? AND user_id = ?`

	var member models.ProjectUser
	err := scope.DB.QueryRowContext(ctx, query, projectID, userID).Scan(
		&member.ID,
		&member.ProjectID,
		&member.UserID,
		&member.Role,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.CodeProjectUserNotFound, userID.String())
		}
		return nil, fmt.Errorf("failed to get project user: %w", err)
	}

	return &member, nil
}

// ListByProject retrieves all memberships of a project in join order.
func (r *projectUserRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectUser, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no user scope in context")
	}

	query := `
		SELECT id, project_id, user_id, role, created_at, updated_at
		FROM project_users
		WHERE project_id = ?
		ORDER BY created_at`

	rows, err := scope.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project users: %w", err)
	}
	defer rows.Close()

	var members []*models.ProjectUser
	for rows.Next() {
		var member models.ProjectUser
		err := rows.Scan(
			&member.ID,
			&member.ProjectID,
			&member.UserID,
			&member.Role,
			&member.CreatedAt,
			&member.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project user: %w", err)
		}
		members = append(members, &member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project users: %w", err)
	}

	return members, nil
}

// UpdateRole changes a member's role.
func (r *projectUserRepository) UpdateRole(ctx context.Context, projectID, userID uuid.UUID, role models.Role) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	query := `
		UPDATE project_users
		SET role = ?, updated_at = ?
		WHERE project_id = ? AND user_id = ?`

	result, err := scope.DB.ExecContext(ctx, query, role, time.Now(), projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to update project user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update project user: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.CodeProjectUserNotFound, userID.String())
	}

	return nil
}

// Delete removes one membership row.
func (r *projectUserRepository) Delete(ctx context.Context, projectID, userID uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	query := `DELETE FROM project_users WHERE project_id = ? AND user_id = ?`

	result, err := scope.DB.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove project user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove project user: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound(apperrors.CodeProjectUserNotFound, userID.String())
	}

	return nil
}

// DeleteByProject removes all memberships of a project (project-delete
// cascade).
func (r *projectUserRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no user scope in context")
	}

	_, err := scope.DB.ExecContext(ctx, `DELETE FROM project_users WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("failed to remove project users: %w", err)
	}

	return nil
}

// Ensure projectUserRepository implements ProjectUserRepository at compile time.
var _ ProjectUserRepository = (*projectUserRepository)(nil)
