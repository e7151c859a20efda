package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrTextRequired = errors.New("text is required")

type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

// ValidateText rejects empty and whitespace-only post or comment text.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrTextRequired
	}
	return nil
}

// NewPost builds a post authored by author with empty like and comment lists.
func NewPost(author CachedUser, text string) (*Post, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	return &Post{
		ID:        uuid.New(),
		UserID:    author.ID,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Text:      text,
		Likes:     []Like{},
		Comments:  []Comment{},
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (p *Post) IsAuthor(userID uuid.UUID) bool {
	return p.UserID == userID
}

func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(commentID uuid.UUID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}
