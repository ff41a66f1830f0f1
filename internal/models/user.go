package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	FirstName   string    `gorm:"size:150;not null" json:"first_name"`
	LastName    string    `gorm:"size:150;not null" json:"last_name"`
	Email       string    `gorm:"not null" json:"email"`
	Password    string    `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	IsActive    bool      `gorm:"default:true;not null" json:"is_active"`
	IsSuperuser bool      `gorm:"default:false;not null" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
