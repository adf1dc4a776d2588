package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Firstname    string         `gorm:"type:varchar(25);not null" json:"firstname"`
	Lastname     string         `gorm:"type:varchar(25);not null" json:"lastname"`
	Email        string         `gorm:"type:varchar(35);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	PasswordSalt string         `gorm:"type:varchar(64);not null" json:"-"`
	Role         string         `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	OwnedProjects []Project `gorm:"foreignKey:OwnerID" json:"-"`
}

func (User) TableName() string {
	return "user_accounts"
}
