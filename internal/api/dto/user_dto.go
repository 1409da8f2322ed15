package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// UserResponse is the roster wire shape. The password hash never leaves the
// service.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// CreateUserRequest payload.
type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// UpdateUserRequest is a partial roster update; absent fields are untouched.
type UpdateUserRequest struct {
	Name   *string      `json:"name"`
	Email  *string      `json:"email"`
	Role   *domain.Role `json:"role"`
	Active *bool        `json:"active"`
}
