package handler

import (
	"net/http"
	"strings"

	"github.com/devconnector/post-service/internal/dto"
	"github.com/devconnector/post-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	comments, err := h.services.Post.AddComment(c.Request.Context(), postID, user.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) commentsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(strings.TrimSpace(c.Param("commentID")))
	if err != nil {
		respondError(c, service.ErrCommentNotFound)
		return
	}

	post, err := h.services.Post.RemoveComment(c.Request.Context(), postID, commentID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}
