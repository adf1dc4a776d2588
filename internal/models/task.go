package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Name           string         `gorm:"type:varchar(35);not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	ProjectID      uint64         `gorm:"not null;index" json:"project_id"`
	StatusID       uint64         `gorm:"index" json:"status_id"`
	AssignedUserID uint64         `gorm:"not null;index" json:"assigned_user_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project      Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Status       Status  `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	AssignedUser User    `gorm:"foreignKey:AssignedUserID" json:"assigned_user,omitempty"`
}
