package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Term      string    `json:"term"`
	Room      string    `json:"room"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCourseRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
	Term string `json:"term" binding:"required"`
	Room string `json:"room"`
}
