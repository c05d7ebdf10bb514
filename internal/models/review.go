package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Author    string    `json:"author"`
	ProductID int64     `json:"product"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateReviewRequest struct {
	ProductID int64  `json:"product" validate:"required,gt=0"`
	Text      string `json:"text" validate:"required,max=5000"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
}

type UpdateReviewRequest struct {
	Text   *string `json:"text,omitempty" validate:"omitempty,min=1,max=5000"`
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}
