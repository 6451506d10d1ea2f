package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Subject   string         `json:"subject" gorm:"not null;uniqueIndex"` // lowercase, trimmed; one test per subject
	Questions []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	Duration  int            `json:"duration" gorm:"not null;default:60"` // minutes
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
