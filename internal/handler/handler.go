package handler

import (
	"net/http"

	"github.com/devconnector/post-service/internal/dto"
	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Handler struct {
	services *service.Service
	logger   *zap.Logger
}

func New(services *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(gin.CustomRecovery(h.recovery))
	r.Use(cors.New(corsConfig()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
	})

	api := r.Group("/api")
	{
		posts := api.Group("/posts", h.authMiddleware)
		{
			posts.POST("", h.postsCreate)
			posts.GET("", h.postsGetAll)
			posts.GET("/:postID", h.postsGetByID)
			posts.DELETE("/:postID", h.postsDelete)
			posts.PUT("/like/:postID", h.postsLike)
			posts.PUT("/unlike/:postID", h.postsUnlike)
			posts.PUT("/comment/:postID", h.commentsCreate)
			posts.DELETE("/comment/:commentID/:postID", h.commentsDelete)
		}
	}

	return r
}

func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-auth-token"},
		AllowCredentials: true,
	}

	if origin := viper.GetString("client.origin"); origin != "" {
		cfg.AllowOrigins = []string{origin}
	} else {
		cfg.AllowAllOrigins = true
	}

	return cfg
}

func (h *Handler) recovery(c *gin.Context, recovered any) {
	h.logger.Sugar().Errorf("recovered from panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewBasicResponse(false, service.ErrInternal.Error()))
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.CachedUser {
	userReq, _ := c.Get(userCtxKey)

	user, ok := userReq.(model.CachedUser)
	if !ok {
		return nil
	}

	return &user
}
