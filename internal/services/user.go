package services

import (
	"context"
	"fmt"

	"github.com/fpt-usermanagement/apiserver/types"
	"github.com/sirupsen/logrus"
)

const (
	msgUsernameExists = "Username already exists!"
	msgEmailExists    = "Email already exists!"
	msgUserRegistered = "User registered successfully!"
	msgUserUpdated    = "User updated successfully!"
	msgUserDeleted    = "User deleted successfully!"
	msgStatusUpdated  = "User status updated successfully!"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]types.User, error)
	ListByRole(ctx context.Context, role types.Role) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// CredentialVerifier checks submitted credentials against the stored hash.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (types.User, error)
}

// TokenIssuer produces a signed bearer token bound to a user.
type TokenIssuer interface {
	Issue(user types.User) (string, error)
}

// PasswordHasher derives a one-way hash from a plaintext password.
type PasswordHasher func(password string) (string, error)

// UserService owns the business rules for account creation, authentication
// orchestration, and account maintenance. It is the only component that
// mutates user records.
type UserService struct {
	repo     UserRepository
	verifier CredentialVerifier
	tokens   TokenIssuer
	hash     PasswordHasher
	log      *logrus.Logger
}

func NewUserService(
	repo UserRepository,
	verifier CredentialVerifier,
	tokens TokenIssuer,
	hash PasswordHasher,
	log *logrus.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		verifier: verifier,
		tokens:   tokens,
		hash:     hash,
		log:      log,
	}
}

// Register creates a new active user with a hashed password. Duplicate
// username and email are declared failures carried in the envelope, checked
// in that order; nothing is persisted on failure.
func (s *UserService) Register(ctx context.Context, req types.RegisterRequest) (types.APIResponse, error) {
	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return types.APIResponse{}, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return types.APIResponse{Success: false, Message: msgUsernameExists}, nil
	}

	exists, err = s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return types.APIResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return types.APIResponse{Success: false, Message: msgEmailExists}, nil
	}

	role, err := types.ParseRole(req.Role)
	if err != nil {
		return types.APIResponse{}, err
	}

	hashed, err := s.hash(req.Password)
	if err != nil {
		return types.APIResponse{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         role,
		PasswordHash: hashed,
		Active:       true,
	})
	if err != nil {
		return types.APIResponse{}, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).
		Info("user registered")
	return types.APIResponse{Success: true, Message: msgUserRegistered}, nil
}

// Login verifies credentials, issues a bearer token, and assembles the auth
// response from the stored record. A missing record after successful
// verification is an inconsistent state and propagates as not-found.
func (s *UserService) Login(ctx context.Context, req types.LoginRequest) (types.AuthResponse, error) {
	identity, err := s.verifier.Verify(ctx, req.Username, req.Password)
	if err != nil {
		return types.AuthResponse{}, err
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		return types.AuthResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return types.AuthResponse{}, fmt.Errorf("user not found: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).
		Info("user logged in")
	return types.AuthResponse{
		Token:    token,
		Type:     types.TokenTypeBearer,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role.String(),
	}, nil
}

// GetAllUsers returns every user in store order, projected for the wire.
func (s *UserService) GetAllUsers(ctx context.Context) ([]types.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return projectUsers(users), nil
}

// GetUserByID returns one user projection; not-found propagates.
func (s *UserService) GetUserByID(ctx context.Context, id int) (types.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.UserResponse{}, err
	}
	return types.NewUserResponse(user), nil
}

// GetUsersByRole returns all users with the given role in store order.
func (s *UserService) GetUsersByRole(ctx context.Context, role types.Role) ([]types.UserResponse, error) {
	users, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return projectUsers(users), nil
}

// UpdateUser overwrites full name and email, and the password hash only when
// a non-empty password is submitted. Username, role, and active are left
// untouched. Email uniqueness is not re-checked here; the store's unique
// index has the last word.
func (s *UserService) UpdateUser(ctx context.Context, id int, req types.RegisterRequest) (types.APIResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.APIResponse{}, err
	}

	user.FullName = req.FullName
	user.Email = req.Email

	if req.Password != "" {
		hashed, err := s.hash(req.Password)
		if err != nil {
			return types.APIResponse{}, err
		}
		user.PasswordHash = hashed
	}

	if _, err := s.repo.Update(ctx, user); err != nil {
		return types.APIResponse{}, err
	}

	s.log.WithField("user_id", id).Info("user updated")
	return types.APIResponse{Success: true, Message: msgUserUpdated}, nil
}

// DeleteUser permanently removes a user; not-found propagates.
func (s *UserService) DeleteUser(ctx context.Context, id int) (types.APIResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return types.APIResponse{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return types.APIResponse{}, err
	}

	s.log.WithField("user_id", id).Info("user deleted")
	return types.APIResponse{Success: true, Message: msgUserDeleted}, nil
}

// ToggleUserStatus flips the active flag; not-found propagates. Applying it
// twice restores the original state.
func (s *UserService) ToggleUserStatus(ctx context.Context, id int) (types.APIResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.APIResponse{}, err
	}

	user.Active = !user.Active
	if _, err := s.repo.Update(ctx, user); err != nil {
		return types.APIResponse{}, err
	}

	s.log.WithFields(logrus.Fields{"user_id": id, "active": user.Active}).
		Info("user status toggled")
	return types.APIResponse{Success: true, Message: msgStatusUpdated}, nil
}

func projectUsers(users []types.User) []types.UserResponse {
	responses := make([]types.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, types.NewUserResponse(user))
	}
	return responses
}
