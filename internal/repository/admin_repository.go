package repository

import (
	"gorm.io/gorm"

	"textbook_backend/internal/model"
)

type AdminRepository interface {
	Create(admin *model.Admin) error
	FindByID(id uint) (*model.Admin, error)
	FindByEmail(email string) (*model.Admin, error)
	FindAll() ([]model.Admin, error)
	Delete(id uint) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(admin *model.Admin) error {
	return r.db.Create(admin).Error
}

func (r *adminRepository) FindByID(id uint) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByEmail(email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindAll() ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.Order("created_at ASC").Find(&admins).Error
	return admins, err
}

func (r *adminRepository) Delete(id uint) error {
	return r.db.Delete(&model.Admin{}, id).Error
}
