package handler

import (
	"errors"
	"net/http"

	"github.com/devconnector/post-service/internal/dto"
	"github.com/devconnector/post-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidToken  = errors.New("token is not valid")
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrTextRequired),
		errors.Is(err, service.ErrPostAlreadyLiked),
		errors.Is(err, service.ErrPostNotLiked):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotPostOwner),
		errors.Is(err, service.ErrNotCommentOwner):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError never leaks details of unexpected errors.
func respondError(c *gin.Context, err error) {
	status := statusFromError(err)
	details := err.Error()
	if status == http.StatusInternalServerError {
		details = service.ErrInternal.Error()
	}

	c.JSON(status, dto.NewBasicResponse(false, details))
}
