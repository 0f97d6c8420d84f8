package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin        = "ADMIN"
	RoleManager      = "MANAGER"
	RoleReceptionist = "RECEPTIONIST"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserInactive = errors.New("user account is inactive")
var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateUsername = errors.New("username already exists")
var ErrDuplicateEmail = errors.New("email already exists")
var ErrTokenMalformed = errors.New("token is malformed or has an invalid signature")
var ErrInvalidToken = errors.New("token is invalid or expired")
var ErrInvalidRole = errors.New("invalid role")
var ErrMigrationRunning = errors.New("credential migration already in progress")

// ValidRole reports whether role is one of the staff roles the system knows.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleReceptionist:
		return true
	}
	return false
}

// User models an authenticatable staff account. PasswordHash is never
// serialized and must never appear in logs or responses.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `json:"phone,omitempty"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FullName joins first and last name for display purposes.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the account holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
