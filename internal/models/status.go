package models

import (
	"time"

	"gorm.io/gorm"
)

// Status is a free-form named state shared by projects and tasks. There is no
// transition graph between statuses.
type Status struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(25);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
