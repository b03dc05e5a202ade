package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
	"github.com/sitedesk/sitedesk-engine/pkg/models"
	"github.com/sitedesk/sitedesk-engine/pkg/repositories"
)

// CreateUserInput is the payload for creating a user.
type CreateUserInput struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// UserService manages user records inside the active store.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	// GetOrCreateByName returns the user with the given display name,
	// creating it on first use. Session switches call this so a fresh store
	// always has its owner row.
	GetOrCreateByName(ctx context.Context, name string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(users repositories.UserRepository, logger *zap.Logger) UserService {
	return &userService{users: users, logger: logger}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user := &models.User{Name: input.Name}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Created user", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetByName(ctx context.Context, name string) (*models.User, error) {
	return s.users.GetByName(ctx, name)
}

func (s *userService) GetOrCreateByName(ctx context.Context, name string) (*models.User, error) {
	user, err := s.users.GetByName(ctx, name)
	if err == nil {
		return user, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	created, cerr := s.Create(ctx, CreateUserInput{Name: name})
	if cerr != nil {
		return nil, cerr
	}
	return created, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Rename(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	if err := validateInput(CreateUserInput{Name: name}); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleted user", zap.String("user_id", id.String()))
	return nil
}

var _ UserService = (*userService)(nil)
