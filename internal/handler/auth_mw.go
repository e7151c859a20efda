package handler

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/devconnector/post-service/internal/dto"
	"github.com/devconnector/post-service/internal/service"
	"github.com/devconnector/post-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userCtxKey = "user"

func (h *Handler) authMiddleware(c *gin.Context) {
	accessToken := accessTokenFromRequest(c)
	if accessToken == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errInvalidToken.Error()))
		return
	}

	userID, err := userIDFromClaims(claims)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errInvalidToken.Error()))
		return
	}

	user, err := h.services.UserCache.CreateOrGet(c.Request.Context(), userID, accessToken)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewBasicResponse(false, service.ErrInternal.Error()))
		return
	}

	c.Set(userCtxKey, *user)

	c.Next()
}

// accessTokenFromRequest accepts "Authorization: Bearer <token>" and the legacy x-auth-token header.
func accessTokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	return strings.TrimSpace(c.GetHeader("x-auth-token"))
}

// userIDFromClaims reads either {"id": ...} or {"user": {"id": ...}}.
func userIDFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	idString, ok := claims["id"].(string)
	if !ok {
		user, isMap := claims["user"].(map[string]interface{})
		if !isMap {
			return uuid.Nil, errInvalidToken
		}
		idString, ok = user["id"].(string)
		if !ok {
			return uuid.Nil, errInvalidToken
		}
	}

	return uuid.Parse(idString)
}
