package repository

import (
	"context"
	"errors"

	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository/redisrepo"
	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrNoMatch       = errors.New("no record matched the condition")
)

// Post stores posts together with their likes and comments.
// Likes and comments are returned newest first.
type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AddLike fails with ErrAlreadyExists if the user already liked the post.
	AddLike(ctx context.Context, postID uuid.UUID, like model.Like) ([]model.Like, error)
	// RemoveLike fails with ErrNoMatch if the user has not liked the post.
	RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) ([]model.Like, error)
	AddComment(ctx context.Context, postID uuid.UUID, comment model.Comment) ([]model.Comment, error)
	// DeleteComment removes the comment only if it belongs to the post and was written by authorID.
	DeleteComment(ctx context.Context, postID uuid.UUID, commentID uuid.UUID, authorID uuid.UUID) (*model.Post, error)
}

type UserCache interface {
	Create(ctx context.Context, cachedUser model.CachedUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
}

type Repository struct {
	Post      Post
	UserCache UserCache
	Redis     *redisrepo.RedisRepository
}

func New(post Post, userCache UserCache, redis *redisrepo.RedisRepository) *Repository {
	return &Repository{
		Post:      post,
		UserCache: userCache,
		Redis:     redis,
	}
}
