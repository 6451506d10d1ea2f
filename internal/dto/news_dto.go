package dto

import "time"

type NewsDTO struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type NewsDeleteRequest struct {
	ID uint `json:"id" form:"id" binding:"required"`
}
