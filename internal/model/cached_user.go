package model

import "github.com/google/uuid"

type CachedUser struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}
