package repository

import (
	"context"

	"github.com/yukikurage/organiz-api/internal/models"
	"github.com/yukikurage/organiz-api/internal/utils"
)

// UserRepository defines the interface for account data access
type UserRepository interface {
	// Create creates a new account
	Create(ctx context.Context, user *models.User) error

	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds an account by exact email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// ExistsByEmail reports whether any account uses the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uint64) (*models.Category, error)

	// ExistsByName also matches soft-deleted rows, which still hold the unique name
	ExistsByName(ctx context.Context, name string) (bool, error)

	Update(ctx context.Context, category *models.Category) error

	// Delete soft deletes a category
	Delete(ctx context.Context, id uint64) error
}

// StatusRepository defines the interface for status data access
type StatusRepository interface {
	Create(ctx context.Context, status *models.Status) error
	FindAll(ctx context.Context) ([]models.Status, error)
	FindByID(ctx context.Context, id uint64) (*models.Status, error)
	FindByName(ctx context.Context, name string) (*models.Status, error)

	// ExistsByName matches soft-deleted rows too; excludeID skips one row (0 skips nothing)
	ExistsByName(ctx context.Context, name string, excludeID uint64) (bool, error)

	// EnsureNames creates, in one transaction, every name that has no row yet
	EnsureNames(ctx context.Context, names []string) error

	Update(ctx context.Context, status *models.Status) error

	// Delete soft deletes a status
	Delete(ctx context.Context, id uint64) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	UserID     uint64
	StatusName *string
	Pagination utils.PaginationParams
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a project with its category links
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a non-deleted project by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error)

	// FindVisibleByID finds a project the user owns or collaborates on
	FindVisibleByID(ctx context.Context, userID, projectID uint64) (*models.Project, error)

	// List retrieves the projects a user owns or collaborates on
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, error)

	// Update saves scalar fields and, when replaceCategories is set, the category links
	Update(ctx context.Context, project *models.Project, replaceCategories bool) error

	// Delete soft deletes a project
	Delete(ctx context.Context, id uint64) error

	// AddCollaborator links the account to the project and bumps updated_at
	AddCollaborator(ctx context.Context, project *models.Project, user *models.User) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID         uint64
	ProjectID      *uint64
	AssignedUserID *uint64
	Pagination     utils.PaginationParams
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks of the projects visible to filter.UserID
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(ctx context.Context, task *models.Task) error

	// Delete soft deletes a task
	Delete(ctx context.Context, id uint64) error
}
