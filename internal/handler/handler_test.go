package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devconnector/post-service/internal/dto"
	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/devconnector/post-service/internal/repository/memory"
	"github.com/devconnector/post-service/internal/repository/redisrepo"
	"github.com/devconnector/post-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-access-secret"

type testServer struct {
	router *gin.Engine
	repo   *repository.Repository
}

func newTestServerWithRepo(t *testing.T, post repository.Post) *testServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("ACCESS_SECRET", testSecret)

	repo := repository.New(post, memory.NewUserStore(), redisrepo.NewWithDefault(memory.NewCache()))
	services := service.New(zap.NewNop(), repo)

	return &testServer{
		router: New(services, zap.NewNop()).InitRoutes(),
		repo:   repo,
	}
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWithRepo(t, memory.NewPostStore())
}

func (s *testServer) addUser(t *testing.T, name string) (model.CachedUser, string) {
	t.Helper()

	user := model.CachedUser{ID: uuid.New(), Name: name, Avatar: "//gravatar/" + name}
	require.NoError(t, s.repo.UserCache.Create(context.Background(), user))

	return user, signToken(t, jwt.MapClaims{"id": user.ID.String()})
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var result T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), w.Body.String())
	return result
}

func (s *testServer) createPost(t *testing.T, token, text string) model.Post {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/posts", token, dto.CreatePostRequest{Text: text})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[model.Post](t, w)
}

func TestCreatePost(t *testing.T) {
	s := newTestServer(t)
	user, token := s.addUser(t, "alice")

	post := s.createPost(t, token, "hi")

	assert.Equal(t, "hi", post.Text)
	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, "alice", post.Name)
	assert.Equal(t, user.Avatar, post.Avatar)
	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Comments)
}

func TestCreatePost_EmptyText(t *testing.T) {
	s := newTestServer(t)
	_, token := s.addUser(t, "alice")

	w := s.do(t, http.MethodPost, "/api/posts", token, dto.CreatePostRequest{Text: ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[dto.BasicResponse](t, w)
	assert.False(t, resp.Ok)
	assert.Equal(t, service.ErrTextRequired.Error(), resp.Details)
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)
	user, _ := s.addUser(t, "alice")

	w := s.do(t, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/posts", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": user.ID.String()}).SignedString([]byte("wrong"))
	require.NoError(t, err)
	w = s.do(t, http.MethodGet, "/api/posts", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// unknown user and no user service configured
	w = s.do(t, http.MethodGet, "/api/posts", signToken(t, jwt.MapClaims{"id": uuid.New().String()}), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	nested := signToken(t, jwt.MapClaims{"user": map[string]interface{}{"id": user.ID.String()}})
	w = s.do(t, http.MethodGet, "/api/posts", nested, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_EmptySecret(t *testing.T) {
	s := newTestServer(t)
	user, _ := s.addUser(t, "alice")
	t.Setenv("ACCESS_SECRET", "")

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": user.ID.String()}).SignedString([]byte(""))
	require.NoError(t, err)

	w := s.do(t, http.MethodGet, "/api/posts", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_LegacyHeader(t *testing.T) {
	s := newTestServer(t)
	_, token := s.addUser(t, "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("x-auth-token", token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetPosts_NewestFirst(t *testing.T) {
	s := newTestServer(t)
	_, token := s.addUser(t, "alice")

	first := s.createPost(t, token, "first")
	second := s.createPost(t, token, "second")

	w := s.do(t, http.MethodGet, "/api/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	posts := decode[[]model.Post](t, w)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestGetPost_NotFound(t *testing.T) {
	s := newTestServer(t)
	_, token := s.addUser(t, "alice")

	w := s.do(t, http.MethodGet, "/api/posts/"+uuid.New().String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/posts/not-an-id", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/posts/not-an-id", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// A creates P, B likes it, fails to like it again, then unlikes it.
func TestLikeScenario(t *testing.T) {
	s := newTestServer(t)
	_, tokenA := s.addUser(t, "alice")
	userB, tokenB := s.addUser(t, "bob")

	post := s.createPost(t, tokenA, "hi")

	w := s.do(t, http.MethodPut, "/api/posts/like/"+post.ID.String(), tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	likes := decode[[]model.Like](t, w)
	require.Len(t, likes, 1)
	assert.Equal(t, userB.ID, likes[0].UserID)

	w = s.do(t, http.MethodPut, "/api/posts/like/"+post.ID.String(), tokenB, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrPostAlreadyLiked.Error(), decode[dto.BasicResponse](t, w).Details)

	w = s.do(t, http.MethodPut, "/api/posts/unlike/"+post.ID.String(), tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Like](t, w), 0)

	w = s.do(t, http.MethodPut, "/api/posts/unlike/"+post.ID.String(), tokenB, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrPostNotLiked.Error(), decode[dto.BasicResponse](t, w).Details)
}

func TestLike_MissingPost(t *testing.T) {
	s := newTestServer(t)
	_, token := s.addUser(t, "alice")

	w := s.do(t, http.MethodPut, "/api/posts/like/"+uuid.New().String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// A creates P, deletes it, and P is gone.
func TestDeleteScenario_Owner(t *testing.T) {
	s := newTestServer(t)
	_, tokenA := s.addUser(t, "alice")

	post := s.createPost(t, tokenA, "hi")

	w := s.do(t, http.MethodDelete, "/api/posts/"+post.ID.String(), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post removed", decode[dto.MsgResponse](t, w).Msg)

	w = s.do(t, http.MethodGet, "/api/posts/"+post.ID.String(), tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// A creates P, B cannot delete it.
func TestDeleteScenario_NotOwner(t *testing.T) {
	s := newTestServer(t)
	_, tokenA := s.addUser(t, "alice")
	_, tokenB := s.addUser(t, "bob")

	post := s.createPost(t, tokenA, "hi")

	w := s.do(t, http.MethodDelete, "/api/posts/"+post.ID.String(), tokenB, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/posts/"+post.ID.String(), tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, post.ID, decode[model.Post](t, w).ID)
}

func TestComments(t *testing.T) {
	s := newTestServer(t)
	_, tokenA := s.addUser(t, "alice")
	userB, tokenB := s.addUser(t, "bob")

	post := s.createPost(t, tokenA, "hi")
	commentPath := "/api/posts/comment/" + post.ID.String()

	w := s.do(t, http.MethodPut, commentPath, tokenB, dto.CreateCommentRequest{Text: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, commentPath, tokenA, dto.CreateCommentRequest{Text: "first"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPut, commentPath, tokenB, dto.CreateCommentRequest{Text: "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	comments := decode[[]model.Comment](t, w)
	require.Len(t, comments, 2)
	assert.Equal(t, "hello", comments[0].Text)
	assert.Equal(t, userB.ID, comments[0].UserID)

	deletePath := "/api/posts/comment/" + comments[0].ID.String() + "/" + post.ID.String()

	w = s.do(t, http.MethodDelete, deletePath, tokenA, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodDelete, deletePath, tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[model.Post](t, w)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, "first", updated.Comments[0].Text)

	w = s.do(t, http.MethodDelete, deletePath, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/posts/comment/bad/"+post.ID.String(), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComment_MissingPost(t *testing.T) {
	s := newTestServer(t)
	_, token := s.addUser(t, "alice")

	w := s.do(t, http.MethodPut, "/api/posts/comment/"+uuid.New().String(), token, dto.CreateCommentRequest{Text: "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type brokenPostRepo struct {
	repository.Post
}

func (r *brokenPostRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	return nil, errors.New("dial tcp 10.0.0.1:5432: connection refused")
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	s := newTestServerWithRepo(t, &brokenPostRepo{Post: memory.NewPostStore()})
	_, token := s.addUser(t, "alice")

	w := s.do(t, http.MethodGet, "/api/posts", token, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[dto.BasicResponse](t, w)
	assert.Equal(t, service.ErrInternal.Error(), resp.Details)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.BasicResponse](t, w).Ok)
}

func TestStatusFromError(t *testing.T) {
	cases := map[error]int{
		service.ErrTextRequired:     http.StatusBadRequest,
		service.ErrPostAlreadyLiked: http.StatusBadRequest,
		service.ErrPostNotLiked:     http.StatusBadRequest,
		service.ErrPostNotFound:     http.StatusNotFound,
		service.ErrCommentNotFound:  http.StatusNotFound,
		service.ErrNotPostOwner:     http.StatusUnauthorized,
		service.ErrNotCommentOwner:  http.StatusUnauthorized,
		service.ErrInternal:         http.StatusInternalServerError,
		errors.New("boom"):          http.StatusInternalServerError,
	}

	for err, status := range cases {
		assert.Equal(t, status, statusFromError(err), err.Error())
	}
}
