package model

import (
	"time"

	"gorm.io/gorm"
)

type News struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `json:"title" gorm:"not null"`
	Desc      string         `json:"desc" gorm:"type:text;not null"`
	Image     string         `json:"image,omitempty"` // public URL from the file storage layer
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
