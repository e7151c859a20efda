package service

import (
	"context"
	"errors"

	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/google/uuid"
)

func (s *postService) Like(ctx context.Context, id uuid.UUID, userID uuid.UUID) ([]model.Like, error) {
	likes, err := s.repo.Post.AddLike(ctx, id, model.NewLike(userID))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrPostNotFound
		case errors.Is(err, repository.ErrAlreadyExists):
			return nil, ErrPostAlreadyLiked
		}

		s.logger.Sugar().Errorf("failed to like post(%s) by user(%s): %s", id.String(), userID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidatePost(ctx, id)

	return likes, nil
}

func (s *postService) Unlike(ctx context.Context, id uuid.UUID, userID uuid.UUID) ([]model.Like, error) {
	likes, err := s.repo.Post.RemoveLike(ctx, id, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrPostNotFound
		case errors.Is(err, repository.ErrNoMatch):
			return nil, ErrPostNotLiked
		}

		s.logger.Sugar().Errorf("failed to unlike post(%s) by user(%s): %s", id.String(), userID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidatePost(ctx, id)

	return likes, nil
}
