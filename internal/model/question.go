package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	ID                 uint                         `gorm:"primarykey" json:"id"`
	TestID             uint                         `json:"test_id" gorm:"not null;index"`
	QuestionText       string                       `json:"question_text" gorm:"type:text;not null"`
	Options            datatypes.JSONSlice[string]  `json:"options" gorm:"not null"` // exactly 4 option strings
	CorrectAnswerIndex int                          `json:"correct_answer_index" gorm:"not null"` // 0..3, never sent to test takers
	CreatedAt          time.Time                    `json:"created_at"`
	UpdatedAt          time.Time                    `json:"updated_at"`
	DeletedAt          gorm.DeletedAt               `gorm:"index" json:"-"`
}
