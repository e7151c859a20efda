package model

import "github.com/google/uuid"

type Like struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user"`
}

func NewLike(userID uuid.UUID) Like {
	return Like{
		ID:     uuid.New(),
		UserID: userID,
	}
}
