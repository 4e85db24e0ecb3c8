// Package memory provides in-process repositories for the stub API.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/barbercommunity/marketplace/internal/core/domain"
)

// UserRepository keeps accounts in a map keyed by email.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
	byID    map[domain.ID]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[domain.ID]*domain.User),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	stored := user.Clone()
	if stored.ID == "" {
		stored.ID = domain.ID(uuid.NewString())
	}
	r.byEmail[stored.Email] = stored
	r.byID[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.byEmail[email]; ok {
		return u.Clone(), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id domain.ID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.byID[id]; ok {
		return u.Clone(), nil
	}
	return nil, domain.ErrUserNotFound
}
