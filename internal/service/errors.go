package service

import (
	"errors"

	"github.com/devconnector/post-service/internal/model"
)

var (
	ErrInternal         = errors.New("internal server error")
	ErrTextRequired     = model.ErrTextRequired
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment does not exist")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotPostOwner     = errors.New("user is not the author of the post")
	ErrNotCommentOwner  = errors.New("user is not the author of the comment")
	ErrPostAlreadyLiked = errors.New("post already liked")
	ErrPostNotLiked     = errors.New("post has not yet been liked")
)
