package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/organiz-api/internal/utils"
)

// Paginate applies pagination to a GORM query. A zero Limit leaves the query unbounded.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// VisibleProjects restricts a query joined on "projects" to rows owned by
// userID or shared with them as a collaborator.
func VisibleProjects(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		collaborations := db.Session(&gorm.Session{NewDB: true}).
			Table("user_accounts_projects").
			Select("project_id").
			Where("user_account_id = ?", userID)
		return db.Where("projects.owner_id = ? OR projects.id IN (?)", userID, collaborations)
	}
}
