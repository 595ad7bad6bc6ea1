package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	"github.com/rihlahq/rihla-api/pkg/apperror"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// UserService handles employee account management
type UserService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// ListUsers returns a paginated list of users with their roles
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetUser returns a user by ID with roles and permissions
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

// AssignRoleInput represents the input for assigning a role to a user
type AssignRoleInput struct {
	UserID   uuid.UUID
	RoleName string
}

// AssignRole grants a role to a user
func (s *UserService) AssignRole(ctx context.Context, input *AssignRoleInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}

	role, err := s.roleRepo.GetByName(ctx, input.RoleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NewNotFoundError("Role")
	}

	if err := s.userRepo.AssignRole(ctx, input.UserID, role.ID); err != nil {
		return nil, err
	}

	return s.userRepo.GetWithRoles(ctx, input.UserID)
}

// DeleteUser soft deletes a user
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrNotFound
	}

	return s.userRepo.Delete(ctx, userID)
}

// ListRoles returns all available roles
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}
