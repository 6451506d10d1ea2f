package repository

import (
	"time"

	"gorm.io/gorm"

	"textbook_backend/internal/model"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	FindAllActive() ([]model.User, error)
	CountActive() (int64, error)
	CountActiveSince(t time.Time) (int64, error)
	Deactivate(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) FindAllActive() ([]model.User, error) {
	var users []model.User
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *userRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *userRepository) CountActiveSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("is_active = ? AND last_login >= ?", true, t).
		Count(&count).Error
	return count, err
}

func (r *userRepository) Deactivate(id uint) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("is_active", false).Error
}
