package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/devconnector/post-service/internal/model"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/google/uuid"
)

// PostStore keeps posts in process memory. Every read returns a copy.
type PostStore struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]*model.Post
	// insertion sequence, breaks ties between equal creation times
	seq  map[uuid.UUID]uint64
	next uint64
}

func NewPostStore() *PostStore {
	return &PostStore{
		posts: make(map[uuid.UUID]*model.Post),
		seq:   make(map[uuid.UUID]uint64),
	}
}

func (s *PostStore) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.ID]; exists {
		return nil, repository.ErrAlreadyExists
	}

	stored := clonePost(&post)
	s.posts[post.ID] = stored
	s.next++
	s.seq[post.ID] = s.next

	return clonePost(stored), nil
}

func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, repository.ErrNotFound
	}

	return clonePost(post), nil
}

func (s *PostStore) FindAll(ctx context.Context) ([]*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*model.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, clonePost(post))
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return s.seq[posts[i].ID] > s.seq[posts[j].ID]
	})

	return posts, nil
}

func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[id]; !exists {
		return repository.ErrNotFound
	}
	delete(s.posts, id)
	delete(s.seq, id)

	return nil
}

func (s *PostStore) AddLike(ctx context.Context, postID uuid.UUID, like model.Like) ([]model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, repository.ErrNotFound
	}
	if post.LikedBy(like.UserID) {
		return nil, repository.ErrAlreadyExists
	}

	post.Likes = append([]model.Like{like}, post.Likes...)

	return cloneLikes(post.Likes), nil
}

func (s *PostStore) RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) ([]model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, repository.ErrNotFound
	}

	for i, like := range post.Likes {
		if like.UserID == userID {
			post.Likes = append(post.Likes[:i:i], post.Likes[i+1:]...)
			return cloneLikes(post.Likes), nil
		}
	}

	return nil, repository.ErrNoMatch
}

func (s *PostStore) AddComment(ctx context.Context, postID uuid.UUID, comment model.Comment) ([]model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, repository.ErrNotFound
	}

	post.Comments = append([]model.Comment{comment}, post.Comments...)

	return cloneComments(post.Comments), nil
}

func (s *PostStore) DeleteComment(ctx context.Context, postID uuid.UUID, commentID uuid.UUID, authorID uuid.UUID) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return nil, repository.ErrNotFound
	}

	for i, comment := range post.Comments {
		if comment.ID == commentID && comment.UserID == authorID {
			post.Comments = append(post.Comments[:i:i], post.Comments[i+1:]...)
			return clonePost(post), nil
		}
	}

	return nil, repository.ErrNoMatch
}

func clonePost(post *model.Post) *model.Post {
	clone := *post
	clone.Likes = cloneLikes(post.Likes)
	clone.Comments = cloneComments(post.Comments)
	return &clone
}

func cloneLikes(likes []model.Like) []model.Like {
	return append([]model.Like{}, likes...)
}

func cloneComments(comments []model.Comment) []model.Comment {
	return append([]model.Comment{}, comments...)
}
