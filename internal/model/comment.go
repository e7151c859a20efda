package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"date"`
}

func NewComment(author CachedUser, text string) (*Comment, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	return &Comment{
		ID:        uuid.New(),
		UserID:    author.ID,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}, nil
}
