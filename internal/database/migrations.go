package database

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/models"
	"gorm.io/gorm"
)

const taskAssigneeIndex = "idx_tasks_project_assignee"

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202410170001_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.Category{},
					&models.Status{},
					&models.Project{},
					&models.Task{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					&models.Task{},
					"projects_categories",
					"user_accounts_projects",
					&models.Project{},
					&models.Status{},
					&models.Category{},
					&models.User{},
				)
			},
		},
		{
			// Listing "my tasks" filters on both columns.
			ID: "202410170002_task_assignee_index",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasIndex(&models.Task{}, taskAssigneeIndex) {
					return nil
				}
				return tx.Exec(fmt.Sprintf("CREATE INDEX %s ON tasks (project_id, assigned_user_id)", taskAssigneeIndex)).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropIndex(&models.Task{}, taskAssigneeIndex)
			},
		},
	}
}

// Migrate applies every pending schema migration.
func Migrate(db *gorm.DB, log logrus.FieldLogger) error {
	log.Info("Running database migrations...")
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Database migrations completed")
	return nil
}
