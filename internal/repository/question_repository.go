package repository

import (
	"gorm.io/gorm"

	"textbook_backend/internal/model"
)

type QuestionRepository interface {
	CreateBatch(questions []model.Question) error
	DeleteByTestID(testID uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

// DeleteByTestID hard-deletes a test's question set. Used by the importer,
// where re-import replaces the questions for a subject.
func (r *questionRepository) DeleteByTestID(testID uint) error {
	return r.db.Unscoped().Where("test_id = ?", testID).Delete(&model.Question{}).Error
}
