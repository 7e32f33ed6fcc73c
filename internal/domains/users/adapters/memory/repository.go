package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-shop-server/internal/domains/users/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is a mutex-guarded in-memory user store keyed by username.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{users: make(map[string]*domain.User)}
}

// Create stores a new user, rejecting duplicate usernames.
func (r *Repository) Create(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return ports.ErrDuplicateUsername
	}
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

// GetByUsername returns a copy of the stored user.
func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}
