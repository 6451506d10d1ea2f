package repository

import (
	"gorm.io/gorm"

	"textbook_backend/internal/model"
)

type TestRepository interface {
	Create(test *model.Test) error
	Save(test *model.Test) error
	FindBySubject(subject string) (*model.Test, error)
	FindBySubjectWithQuestions(subject string) (*model.Test, error)
	FindByIDWithQuestions(id uint) (*model.Test, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	// Create with associations also inserts test.Questions.
	return r.db.Create(test).Error
}

func (r *testRepository) Save(test *model.Test) error {
	return r.db.Save(test).Error
}

func (r *testRepository) FindBySubject(subject string) (*model.Test, error) {
	var test model.Test
	err := r.db.Where("subject = ?", subject).First(&test).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindBySubjectWithQuestions(subject string) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.id ASC")
	}).Where("subject = ?", subject).First(&test).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions").First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}
