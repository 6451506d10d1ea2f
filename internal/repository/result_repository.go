package repository

import (
	"time"

	"gorm.io/gorm"

	"textbook_backend/internal/model"
)

// UserResultStat is the explicit shape of the per-user results aggregation.
// Scanned at the store boundary so nothing loosely-typed escapes it.
type UserResultStat struct {
	UserID       uint       `gorm:"column:user_id"`
	TestCount    int        `gorm:"column:test_count"`
	AverageScore float64    `gorm:"column:average_score"`
	LastTestDate *time.Time `gorm:"column:last_test_date"`
}

type ResultRepository interface {
	Create(result *model.Result) error
	FindByUserIDWithTest(userID uint) ([]model.Result, error)
	CountAll() (int64, error)
	StatsByUser() ([]UserResultStat, error)
	Recent(limit int) ([]model.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.Result) error {
	// Create with associations also inserts result.Answers.
	return r.db.Create(result).Error
}

func (r *resultRepository) FindByUserIDWithTest(userID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.Preload("Test").
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Result{}).Count(&count).Error
	return count, err
}

func (r *resultRepository) StatsByUser() ([]UserResultStat, error) {
	var stats []UserResultStat
	err := r.db.Model(&model.Result{}).
		Select("user_id, COUNT(*) AS test_count, AVG(percentage) AS average_score, MAX(submitted_at) AS last_test_date").
		Group("user_id").
		Scan(&stats).Error
	return stats, err
}

func (r *resultRepository) Recent(limit int) ([]model.Result, error) {
	var results []model.Result
	err := r.db.Preload("User").Preload("Test").
		Order("submitted_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}
