package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/fpt-usermanagement/apiserver/internal/store"
	"github.com/fpt-usermanagement/apiserver/types"
)

// ErrInvalidCredentials is returned when a username or password is wrong.
// Callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserLookup is the store capability the verifier needs.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (types.User, error)
}

// Verifier checks submitted credentials against the stored hash.
type Verifier struct {
	users UserLookup
}

func NewVerifier(users UserLookup) *Verifier {
	return &Verifier{users: users}
}

// Verify returns the stored identity when the username exists and the
// plaintext password matches its hash.
func (v *Verifier) Verify(ctx context.Context, username, password string) (types.User, error) {
	user, err := v.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}
