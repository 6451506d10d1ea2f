package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Name       string         `json:"name" gorm:"not null"`
	Email      string         `json:"email" gorm:"not null;uniqueIndex"`
	Password   string         `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Role       string         `json:"role" gorm:"default:'student'"` // "student", "teacher", "admin"
	LastLogin  *time.Time     `json:"last_login,omitempty"`
	LoginCount int            `json:"login_count" gorm:"default:0"`
	IsActive   bool           `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
