package repository

import (
	"context"

	"github.com/yukikurage/organiz-api/internal/database"
	"github.com/yukikurage/organiz-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).
		Omit("Project", "Status", "AssignedUser").
		Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks of the non-deleted projects visible to the user
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	query := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Joins("JOIN projects ON projects.id = tasks.project_id AND projects.deleted_at IS NULL").
		Scopes(database.VisibleProjects(filter.UserID))

	// Apply filters
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.AssignedUserID != nil {
		query = query.Where("tasks.assigned_user_id = ?", *filter.AssignedUserID)
	}

	err := query.
		Order("tasks.id ASC").
		Scopes(database.Paginate(filter.Pagination)).
		Preload("Status").
		Preload("AssignedUser").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).
		Omit("Project", "Status", "AssignedUser").
		Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}
