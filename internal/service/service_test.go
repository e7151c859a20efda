package service

import (
	"context"
	"testing"

	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/devconnector/post-service/internal/repository/memory"
	"github.com/devconnector/post-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	services *Service
	repo     *repository.Repository
	cache    *memory.Cache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cache := memory.NewCache()
	repo := repository.New(memory.NewPostStore(), memory.NewUserStore(), redisrepo.NewWithDefault(cache))

	return &testEnv{
		services: New(zap.NewNop(), repo),
		repo:     repo,
		cache:    cache,
	}
}

func (e *testEnv) addUser(t *testing.T, name string) model.CachedUser {
	t.Helper()

	user := model.CachedUser{
		ID:     uuid.New(),
		Name:   name,
		Avatar: "//www.gravatar.com/avatar/" + name,
	}
	require.NoError(t, e.repo.UserCache.Create(context.Background(), user))
	return user
}
