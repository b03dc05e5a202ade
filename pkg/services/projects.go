package services

import (
	"context"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/repositories"
)

// CreateProjectInput is the payload for creating a project.
type CreateProjectInput struct {
	Name        string    `json:"name" validate:"required,min=1,max=200"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedBy   uuid.UUID `json:"created_by" validate:"required"`
}

// UpdateProjectInput is the payload for updating a project. Nil fields are
// left unchanged.
type UpdateProjectInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ProjectService manages projects and their memberships. Mutations verify the
// caller's project role when a caller id is supplied: viewers are read-only.
type ProjectService interface {
	// Create inserts the project and grants the creator the owner role.
	Create(ctx context.Context, input CreateProjectInput) (*models.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
	// ListByUserWithStats returns the user's projects with task count and
	// overall progress, where progress is the mean of each task's checklist
	// percentage.
	ListByUserWithStats(ctx context.Context, userID uuid.UUID) ([]*models.ProjectWithStats, error)
	GetWithStats(ctx context.Context, id uuid.UUID) (*models.ProjectWithStats, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProjectInput, callerID uuid.UUID) (*models.Project, error)
	// Delete removes the project and everything under it: memberships, floor
	// plans, rooms, tasks, checklist items and comments. Task history is
	// preserved.
	Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error

	AddMember(ctx context.Context, projectID, userID uuid.UUID, role models.Role, callerID uuid.UUID) (*models.ProjectUser, error)
	UpdateMemberRole(ctx context.Context, projectID, userID uuid.UUID, role models.Role, callerID uuid.UUID) error
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID, callerID uuid.UUID) error
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectUser, error)
}

type projectService struct {
	projects   repositories.ProjectRepository
	members    repositories.ProjectUserRepository
	plans      repositories.FloorPlanRepository
	rooms      repositories.RoomRepository
	tasks      repositories.TaskRepository
	checklists repositories.ChecklistItemRepository
	comments   repositories.TaskCommentRepository
	logger     *zap.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(
	projects repositories.ProjectRepository,
	members repositories.ProjectUserRepository,
	plans repositories.FloorPlanRepository,
	rooms repositories.RoomRepository,
	tasks repositories.TaskRepository,
	checklists repositories.ChecklistItemRepository,
	comments repositories.TaskCommentRepository,
	logger *zap.Logger,
) ProjectService {
	return &projectService{
		projects:   projects,
		members:    members,
		plans:      plans,
		rooms:      rooms,
		tasks:      tasks,
		checklists: checklists,
		comments:   comments,
		logger:     logger,
	}
}

// requireModify checks that the caller holds a role allowed to mutate the
// project. A nil caller id skips the check (trusted internal call).
func (s *projectService) requireModify(ctx context.Context, projectID, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return nil
	}
	member, err := s.members.GetByProjectAndUser(ctx, projectID, callerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.AccessDenied("caller is not a project member")
		}
		return err
	}
	if !member.Role.CanModify() {
		return apperrors.AccessDenied("viewers cannot modify project data")
	}
	return nil
}

func (s *projectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	status := models.ProjectStatus(input.Status)
	if input.Status != "" && !status.IsValid() {
		return nil, apperrors.InvalidInput("status", "unknown project status")
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		CreatedBy:   input.CreatedBy,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	if err := s.members.Create(ctx, &models.ProjectUser{
		ProjectID: project.ID,
		UserID:    input.CreatedBy,
		Role:      models.RoleOwner,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("Created project",
		zap.String("project_id", project.ID.String()),
		zap.String("created_by", input.CreatedBy.String()),
	)
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

// projectStats computes task count and mean-of-task-percentages progress.
func (s *projectService) projectStats(ctx context.Context, project *models.Project) (*models.ProjectWithStats, error) {
	projectTasks, err := collectProjectTasks(ctx, project.ID, s.plans, s.rooms, s.tasks)
	if err != nil {
		return nil, err
	}

	progress := 0
	if len(projectTasks) > 0 {
		sum := 0
		for _, task := range projectTasks {
			p, err := checklistProgress(ctx, s.checklists, task.ID)
			if err != nil {
				return nil, err
			}
			sum += p.Percentage
		}
		progress = int(math.Round(float64(sum) / float64(len(projectTasks))))
	}

	return &models.ProjectWithStats{
		Project:   *project,
		TaskCount: len(projectTasks),
		Progress:  progress,
	}, nil
}

func (s *projectService) ListByUserWithStats(ctx context.Context, userID uuid.UUID) ([]*models.ProjectWithStats, error) {
	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*models.ProjectWithStats, 0, len(projects))
	for _, project := range projects {
		stats, err := s.projectStats(ctx, project)
		if err != nil {
			return nil, err
		}
		result = append(result, stats)
	}
	return result, nil
}

func (s *projectService) GetWithStats(ctx context.Context, id uuid.UUID) (*models.ProjectWithStats, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.projectStats(ctx, project)
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, input UpdateProjectInput, callerID uuid.UUID) (*models.Project, error) {
	if err := s.requireModify(ctx, id, callerID); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("name", "name must not be empty")
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		status := models.ProjectStatus(*input.Status)
		if !status.IsValid() {
			return nil, apperrors.InvalidInput("status", "unknown project status")
		}
		project.Status = status
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	if err := s.requireModify(ctx, id, callerID); err != nil {
		return err
	}

	// Existence check up front so a missing project reports not-found before
	// any cascade work.
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return err
	}

	plans, err := s.plans.ListByProject(ctx, id)
	if err != nil {
		return err
	}
	for _, plan := range plans {
		if err := deleteFloorPlanCascade(ctx, plan.ID, s.plans, s.rooms, s.tasks, s.checklists, s.comments); err != nil {
			return err
		}
	}

	if err := s.members.DeleteByProject(ctx, id); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Deleted project", zap.String("project_id", id.String()))
	return nil
}

func (s *projectService) AddMember(ctx context.Context, projectID, userID uuid.UUID, role models.Role, callerID uuid.UUID) (*models.ProjectUser, error) {
	if err := s.requireModify(ctx, projectID, callerID); err != nil {
		return nil, err
	}
	if role != "" && !models.IsValidRole(string(role)) {
		return nil, apperrors.InvalidInput("role", "unknown project role")
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	member := &models.ProjectUser{ProjectID: projectID, UserID: userID, Role: role}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *projectService) UpdateMemberRole(ctx context.Context, projectID, userID uuid.UUID, role models.Role, callerID uuid.UUID) error {
	if err := s.requireModify(ctx, projectID, callerID); err != nil {
		return err
	}
	if !models.IsValidRole(string(role)) {
		return apperrors.InvalidInput("role", "unknown project role")
	}
	return s.members.UpdateRole(ctx, projectID, userID, role)
}

func (s *projectService) RemoveMember(ctx context.Context, projectID, userID uuid.UUID, callerID uuid.UUID) error {
	if err := s.requireModify(ctx, projectID, callerID); err != nil {
		return err
	}
	return s.members.Delete(ctx, projectID, userID)
}

func (s *projectService) ListMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectUser, error) {
	return s.members.ListByProject(ctx, projectID)
}

var _ ProjectService = (*projectService)(nil)
