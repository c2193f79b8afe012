package types

import "time"

// TokenTypeBearer is the token type carried in every AuthResponse.
const TokenTypeBearer = "Bearer"

// RegisterRequest is the payload for creating a user. The same shape is
// accepted on update, where username is ignored and password is optional.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// LoginRequest is the payload for authenticating a user.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// UserResponse is the read-only projection of a User.
// It never carries the password hash.
type UserResponse struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

// NewUserResponse projects a persisted User onto its wire shape.
func NewUserResponse(user User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.String(),
		Active:    user.Active,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// APIResponse is the generic outcome envelope used by non-auth endpoints.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
