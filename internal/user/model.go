package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrPhoneAlreadyUsed   = errors.New("phone already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidRole        = errors.New("invalid user role")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// Role determines what a user may do. Managers confirm bookings and manage
// cafes, tables and slots; admins additionally manage users.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// IsStaff reports whether the role carries management permissions.
func (r Role) IsStaff() bool {
	return r == RoleManager || r == RoleAdmin
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents a user in the system.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  *string
	Phone        *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email       string
	DisplayName string
	Role        string
	IsActive    *bool // Pointer to distinguish between false and not set

	Page     int
	PageSize int
}
