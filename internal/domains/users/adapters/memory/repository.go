package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/orderstack/inventory-service/internal/domains/users/domain"
	"github.com/orderstack/inventory-service/internal/domains/users/ports"
)

// Repository is an in-memory user store keyed by username.
type Repository struct {
	mu     sync.RWMutex
	users  map[string]*domain.User
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{users: map[string]*domain.User{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *user
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	}
	r.users[strings.ToLower(clone.Username)] = &clone

	out := clone
	return &out, nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

var _ ports.Repository = (*Repository)(nil)
