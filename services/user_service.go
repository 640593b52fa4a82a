package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/google/uuid"
)

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	CreateRole(ctx context.Context, input CreateRoleInput) (*models.Role, error)
	GetAllRoles(ctx context.Context) ([]models.Role, error)
}

type CreateUserInput struct {
	Username string  `json:"username" validate:"required,min=3,max=100"`
	Password string  `json:"password" validate:"required,min=4"`
	RoleID   *string `json:"role_id" validate:"omitempty,uuid"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateRoleInput struct {
	Name string `json:"name" validate:"required,max=50"`
}

type userService struct {
	users repositories.UserRepository
	roles repositories.RoleRepository
}

func NewUserService(users repositories.UserRepository, roles repositories.RoleRepository) UserService {
	return &userService{users: users, roles: roles}
}

func (s *userService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	user := &models.User{
		Username: strings.TrimSpace(input.Username),
		Password: input.Password,
	}
	if input.RoleID != nil {
		id := uuid.MustParse(*input.RoleID)
		user.RoleID = &id
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrReference) {
			return nil, missingRef("role", *input.RoleID)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// Login - только сверка логина и пароля, токены не выдаются.
func (s *userService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	user, err := s.users.FindByCredentials(ctx, strings.TrimSpace(input.Username), input.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

func (s *userService) CreateRole(ctx context.Context, input CreateRoleInput) (*models.Role, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	role := &models.Role{Name: strings.TrimSpace(input.Name)}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return role, nil
}

func (s *userService) GetAllRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.roles.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all roles: %w", err)
	}
	return roles, nil
}
