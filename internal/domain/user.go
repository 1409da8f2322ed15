package domain

import "time"

// Role enumerates the closed set of access roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleAgent    Role = "agent"
	RoleCustomer Role = "customer"
)

// ValidRole reports whether the value is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAgent, RoleCustomer:
		return true
	}
	return false
}

// User is the single account roster: staff and customers share it,
// differentiated only by role.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
