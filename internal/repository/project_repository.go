package repository

import (
	"context"
	"time"

	"github.com/yukikurage/organiz-api/internal/database"
	"github.com/yukikurage/organiz-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create inserts the project and its category links. Owner and status rows
// already exist and are never upserted from here.
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).
		Omit("Owner", "Status", "Collaborators", "Categories.*").
		Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindVisibleByID finds a project the user owns or collaborates on
func (r *GormProjectRepository) FindVisibleByID(ctx context.Context, userID, projectID uint64) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Scopes(database.VisibleProjects(userID)).
		Where("projects.id = ?", projectID).
		Preload("Owner").
		Preload("Status").
		Preload("Categories").
		Preload("Collaborators").
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves the projects a user owns or collaborates on
func (r *GormProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	projects := []models.Project{}

	query := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Scopes(database.VisibleProjects(filter.UserID))

	if filter.StatusName != nil {
		query = query.
			Joins("JOIN statuses ON statuses.id = projects.status_id AND statuses.deleted_at IS NULL").
			Where("statuses.name = ?", *filter.StatusName)
	}

	err := query.
		Order("projects.id ASC").
		Scopes(database.Paginate(filter.Pagination)).
		Preload("Owner").
		Preload("Status").
		Preload("Categories").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update saves scalar fields and optionally replaces the category links
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project, replaceCategories bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Owner", "Status", "Collaborators", "Categories", "Tasks").Save(project).Error; err != nil {
			return err
		}

		if !replaceCategories {
			return nil
		}

		association := tx.Model(project).Omit("Categories.*").Association("Categories")
		if len(project.Categories) == 0 {
			return association.Clear()
		}
		return association.Replace(project.Categories)
	})
}

// Delete soft deletes a project
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}

// AddCollaborator links the account to the project and bumps updated_at
func (r *GormProjectRepository) AddCollaborator(ctx context.Context, project *models.Project, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(project).Omit("Collaborators.*").Association("Collaborators").Append(user); err != nil {
			return err
		}
		return tx.Model(project).Update("updated_at", time.Now()).Error
	})
}
