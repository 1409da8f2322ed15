package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// UserService manages the account roster on behalf of admins and managers.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserCreateInput describes roster creation payloads.
type UserCreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UserUpdateInput is a partial roster update.
type UserUpdateInput struct {
	Name   *string
	Email  *string
	Role   *domain.Role
	Active *bool
}

// Create adds an account with an explicit role. Only admins may grant the
// admin role.
func (s *UserService) Create(ctx context.Context, actor *auth.Principal, input UserCreateInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email, password required", nil)
	}
	if len(input.Password) < auth.MinPasswordLength {
		return nil, apperrors.NewValidationError("password too short", map[string]any{"minLength": auth.MinPasswordLength})
	}
	role := input.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}
	if role == domain.RoleAdmin && actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only admins may grant the admin role")
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Update applies a partial roster update.
func (s *UserService) Update(ctx context.Context, actor *auth.Principal, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		if (*input.Role == domain.RoleAdmin || user.Role == domain.RoleAdmin) && actor.Role != domain.RoleAdmin {
			return nil, apperrors.NewForbidden("only admins may change admin roles")
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes an account. Self-deletion is rejected.
func (s *UserService) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	if actor.User.ID == id {
		return apperrors.NewValidationError("cannot delete your own account", nil)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Get fetches one account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns the whole roster.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
