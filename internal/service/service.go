package service

import (
	"context"
	"time"

	"github.com/devconnector/post-service/internal/dto"
	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const DEFAULT_CACHE_TTL = time.Hour

func cacheTTL() time.Duration {
	if ttl := viper.GetDuration("cache.ttl"); ttl > 0 {
		return ttl
	}
	return DEFAULT_CACHE_TTL
}

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	Like(ctx context.Context, id uuid.UUID, userID uuid.UUID) ([]model.Like, error)
	Unlike(ctx context.Context, id uuid.UUID, userID uuid.UUID) ([]model.Like, error)
	AddComment(ctx context.Context, id uuid.UUID, userID uuid.UUID, input dto.CreateCommentRequest) ([]model.Comment, error)
	RemoveComment(ctx context.Context, id uuid.UUID, commentID uuid.UUID, userID uuid.UUID) (*model.Post, error)
}

type UserCache interface {
	CreateOrGet(ctx context.Context, id uuid.UUID, accessToken string) (*model.CachedUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
}

type Service struct {
	Post
	UserCache
}

func New(logger *zap.Logger, repo *repository.Repository) *Service {
	userCache := newUserCacheService(logger, repo)
	return &Service{
		Post:      newPostService(logger, repo, userCache),
		UserCache: userCache,
	}
}
