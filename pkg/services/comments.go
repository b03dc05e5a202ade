package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/repositories"
)

// CreateCommentInput is the payload for commenting on a task.
type CreateCommentInput struct {
	TaskID  uuid.UUID `json:"task_id" validate:"required"`
	UserID  uuid.UUID `json:"user_id" validate:"required"`
	Content string    `json:"content" validate:"required,min=1"`
}

// CommentService manages task comments.
type CommentService interface {
	Add(ctx context.Context, input CreateCommentInput) (*models.TaskComment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.TaskComment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskComment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentService struct {
	comments repositories.TaskCommentRepository
	tasks    repositories.TaskRepository
	logger   *zap.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(
	comments repositories.TaskCommentRepository,
	tasks repositories.TaskRepository,
	logger *zap.Logger,
) CommentService {
	return &commentService{comments: comments, tasks: tasks, logger: logger}
}

func (s *commentService) Add(ctx context.Context, input CreateCommentInput) (*models.TaskComment, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.tasks.GetByID(ctx, input.TaskID); err != nil {
		return nil, err
	}

	comment := &models.TaskComment{
		TaskID:  input.TaskID,
		UserID:  input.UserID,
		Content: input.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Get(ctx context.Context, id uuid.UUID) (*models.TaskComment, error) {
	return s.comments.GetByID(ctx, id)
}

func (s *commentService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskComment, error) {
	return s.comments.ListByTask(ctx, taskID)
}

func (s *commentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.comments.Delete(ctx, id)
}

var _ CommentService = (*commentService)(nil)
