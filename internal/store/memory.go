package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fpt-usermanagement/apiserver/types"
)

// MemoryUserStore is an in-memory user store with the same uniqueness and
// not-found semantics as the Postgres repository. It backs tests and the
// server's memory driver mode.
type MemoryUserStore struct {
	mu     sync.RWMutex
	users  map[int]types.User
	nextID int
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:  make(map[int]types.User),
		nextID: 1,
	}
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id int) (types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return types.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryUserStore) GetByUsername(ctx context.Context, username string) (types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

func (s *MemoryUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryUserStore) List(ctx context.Context) ([]types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]types.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *MemoryUserStore) ListByRole(ctx context.Context, role types.Role) ([]types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]types.User, 0)
	for _, user := range s.users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *MemoryUserStore) Create(ctx context.Context, user types.User) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return types.User{}, ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return types.User{}, ErrDuplicateEmail
		}
	}

	now := time.Now()
	user.ID = s.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.nextID++
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryUserStore) Update(ctx context.Context, user types.User) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return types.User{}, ErrNotFound
	}
	for id, existing := range s.users {
		if id != user.ID && existing.Email == user.Email {
			return types.User{}, ErrDuplicateEmail
		}
	}

	stored.Email = user.Email
	stored.FullName = user.FullName
	stored.PasswordHash = user.PasswordHash
	stored.Active = user.Active
	stored.UpdatedAt = time.Now()
	s.users[user.ID] = stored
	return stored, nil
}

func (s *MemoryUserStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}
