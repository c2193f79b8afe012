package types

import (
	"fmt"
	"strings"
	"time"
)

// Role is the authorization level of a user. The set is closed.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole maps a role string onto the closed role set, ignoring case.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role: %q", value)
	}
}

// String returns the role's display string.
func (r Role) String() string {
	return string(r)
}

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user, assigned by the store.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen at registration.
	// It never changes afterwards.
	Username string `json:"username" db:"username"`

	// Email is the user's email address. Unique across all users.
	Email string `json:"email" db:"email"`

	// FullName is the user's display name.
	FullName string `json:"full_name" db:"full_name"`

	// Role indicates the user's authorization level.
	Role Role `json:"role" db:"role"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// Active gates login and feature access. Toggled by admins.
	Active bool `json:"active" db:"active"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
