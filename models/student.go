package models

import "github.com/google/uuid"

type Student struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Number string    `json:"number"`
}
