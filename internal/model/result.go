package model

import (
	"time"

	"gorm.io/gorm"
)

// Result is one graded submission. Rows are append-only: repeat submissions
// for the same user and test each create a new Result.
type Result struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"not null;index"`
	User           User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TestID         uint           `json:"test_id" gorm:"not null;index"`
	Test           Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	Answers        []ResultAnswer `json:"answers,omitempty" gorm:"foreignKey:ResultID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Score          int            `json:"score" gorm:"not null"`
	TotalQuestions int            `json:"total_questions" gorm:"not null"`
	TimeTaken      int            `json:"time_taken" gorm:"not null"` // seconds
	Percentage     float64        `json:"percentage" gorm:"not null"` // 0-100, 2 decimal places
	SubmittedAt    time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

type ResultAnswer struct {
	ID                  uint `gorm:"primarykey" json:"id"`
	ResultID            uint `json:"result_id" gorm:"not null;index"`
	QuestionID          uint `json:"question_id" gorm:"not null;index"`
	SelectedOptionIndex int  `json:"selected_option_index" gorm:"not null"`
	IsCorrect           bool `json:"is_correct" gorm:"not null"`
	CorrectAnswerIndex  int  `json:"correct_answer_index" gorm:"not null"`
}
