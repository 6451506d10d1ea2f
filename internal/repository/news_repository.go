package repository

import (
	"gorm.io/gorm"

	"textbook_backend/internal/model"
)

type NewsRepository interface {
	Create(news *model.News) error
	FindByID(id uint) (*model.News, error)
	FindAll() ([]model.News, error)
	Delete(id uint) error
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(news *model.News) error {
	return r.db.Create(news).Error
}

func (r *newsRepository) FindByID(id uint) (*model.News, error) {
	var news model.News
	if err := r.db.First(&news, id).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *newsRepository) FindAll() ([]model.News, error) {
	var news []model.News
	err := r.db.Order("created_at DESC").Find(&news).Error
	return news, err
}

func (r *newsRepository) Delete(id uint) error {
	return r.db.Delete(&model.News{}, id).Error
}
