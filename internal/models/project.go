package models

import (
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(55);uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	OwnerID     uint64         `gorm:"not null;index" json:"owner_id"`
	StatusID    uint64         `gorm:"index" json:"status_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner         User       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Status        Status     `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Collaborators []User     `gorm:"many2many:user_accounts_projects;joinForeignKey:ProjectID;joinReferences:UserAccountID" json:"collaborators,omitempty"`
	Categories    []Category `gorm:"many2many:projects_categories;joinForeignKey:ProjectID;joinReferences:CategoryID" json:"categories,omitempty"`
	Tasks         []Task     `gorm:"foreignKey:ProjectID" json:"-"`
}

// IsOwner reports whether userID owns the project.
func (p *Project) IsOwner(userID uint64) bool {
	return p.OwnerID == userID
}

// IsCollaborator compares by account id, never by loaded instance.
func (p *Project) IsCollaborator(userID uint64) bool {
	return lo.ContainsBy(p.Collaborators, func(u User) bool {
		return u.ID == userID
	})
}

// CanAccess reports whether userID may read or modify the project and its tasks.
func (p *Project) CanAccess(userID uint64) bool {
	return p.IsOwner(userID) || p.IsCollaborator(userID)
}
