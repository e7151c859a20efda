package service

import (
	"context"
	"errors"

	"github.com/devconnector/post-service/internal/dto"
	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/devconnector/post-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type postService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	userCache UserCache
}

func newPostService(logger *zap.Logger, repo *repository.Repository, userCache UserCache) Post {
	return &postService{
		logger:    logger,
		repo:      repo,
		userCache: userCache,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error) {
	if err := model.ValidateText(input.Text); err != nil {
		return nil, err
	}

	author, err := s.userCache.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post, err := model.NewPost(*author, input.Text)
	if err != nil {
		return nil, err
	}

	createdPost, err := s.repo.Post.Create(ctx, *post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return createdPost, nil
}

func (s *postService) FindAll(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.repo.Post.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts: %s", err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *postService) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	generation, err := s.postGeneration(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get post(%s) generation from redis: %s", id.String(), err.Error())
		return s.findPost(ctx, id)
	}
	key := redisrepo.PostKey(id.String(), generation)

	cachedPost, err := redisrepo.Get[model.Post](s.repo.Redis.Default, ctx, key)
	if err == nil {
		return cachedPost, nil
	}
	if !errors.Is(err, redis.Nil) {
		s.logger.Sugar().Errorf("failed to get post(%s) from redis: %s", id.String(), err.Error())
	}

	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	// A mutation committed after the read bumps the generation, so this
	// snapshot lands under a key nobody reads anymore.
	if err := s.repo.Redis.Default.SetJSON(ctx, key, post, cacheTTL()); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%s) in redis: %s", id.String(), err.Error())
	}

	return post, nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}

	if !post.IsAuthor(userID) {
		return ErrNotPostOwner
	}

	if err := s.repo.Post.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to delete post(%s): %s", id.String(), err.Error())
		return ErrInternal
	}

	s.invalidatePost(ctx, id)

	return nil
}

// findPost reads the post from storage, bypassing the cache.
func (s *postService) findPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.repo.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

// postGeneration returns the current cache generation of the post, 0 if it was never mutated.
func (s *postService) postGeneration(ctx context.Context, id uuid.UUID) (int64, error) {
	generation, err := s.repo.Redis.Default.Get(ctx, redisrepo.PostGenerationKey(id.String())).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return generation, err
}

// invalidatePost must run after the mutation is committed.
func (s *postService) invalidatePost(ctx context.Context, id uuid.UUID) {
	if err := s.repo.Redis.Default.Incr(ctx, redisrepo.PostGenerationKey(id.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate post(%s) in redis: %s", id.String(), err.Error())
	}
}
