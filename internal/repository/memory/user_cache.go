package memory

import (
	"context"
	"sync"

	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/google/uuid"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.CachedUser
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[uuid.UUID]model.CachedUser),
	}
}

// Create inserts or replaces the cached user.
func (s *UserStore) Create(ctx context.Context, cachedUser model.CachedUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[cachedUser.ID] = cachedUser
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, repository.ErrNotFound
	}

	return &user, nil
}
