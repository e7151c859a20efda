package handler

import (
	"net/http"
	"strings"

	"github.com/devconnector/post-service/internal/dto"
	"github.com/devconnector/post-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// postIDParam treats a malformed id like an unknown one.
func postIDParam(c *gin.Context) (uuid.UUID, bool) {
	postID, err := uuid.Parse(strings.TrimSpace(c.Param("postID")))
	if err != nil {
		respondError(c, service.ErrPostNotFound)
		return uuid.Nil, false
	}

	return postID, true
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, createdPost)
}

func (h *Handler) postsGetAll(c *gin.Context) {
	posts, err := h.services.Post.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), postID, user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MsgResponse{Msg: "Post removed"})
}

func (h *Handler) postsLike(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	likes, err := h.services.Post.Like(c.Request.Context(), postID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, likes)
}

func (h *Handler) postsUnlike(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	likes, err := h.services.Post.Unlike(c.Request.Context(), postID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, likes)
}
