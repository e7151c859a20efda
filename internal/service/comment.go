package service

import (
	"context"
	"errors"

	"github.com/devconnector/post-service/internal/dto"
	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/google/uuid"
)

func (s *postService) AddComment(ctx context.Context, id uuid.UUID, userID uuid.UUID, input dto.CreateCommentRequest) ([]model.Comment, error) {
	if err := model.ValidateText(input.Text); err != nil {
		return nil, err
	}

	author, err := s.userCache.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment, err := model.NewComment(*author, input.Text)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Post.AddComment(ctx, id, *comment)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to add comment to post(%s) by user(%s): %s", id.String(), userID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidatePost(ctx, id)

	return comments, nil
}

// RemoveComment deletes the comment identified by commentID. Only its author may remove it.
func (s *postService) RemoveComment(ctx context.Context, id uuid.UUID, commentID uuid.UUID, userID uuid.UUID) (*model.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	if comment.UserID != userID {
		return nil, ErrNotCommentOwner
	}

	updatedPost, err := s.repo.Post.DeleteComment(ctx, id, commentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrPostNotFound
		case errors.Is(err, repository.ErrNoMatch):
			return nil, ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to remove comment(%s) from post(%s): %s", commentID.String(), id.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidatePost(ctx, id)

	return updatedPost, nil
}
