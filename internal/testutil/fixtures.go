package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/organiz-api/internal/models"
	"gorm.io/gorm"
)

// CreateUser inserts an account with placeholder credentials.
func CreateUser(t *testing.T, db *gorm.DB, firstname, email string) *models.User {
	t.Helper()
	user := &models.User{
		Firstname:    firstname,
		Lastname:     "Test",
		Email:        email,
		PasswordHash: "hashedpassword",
		PasswordSalt: "salt",
		Role:         "USER",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateStatus(t *testing.T, db *gorm.DB, name string) *models.Status {
	t.Helper()
	status := &models.Status{Name: name}
	require.NoError(t, db.Create(status).Error)
	return status
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

// CreateProject inserts a project owned by owner, optionally shared with collaborators.
func CreateProject(t *testing.T, db *gorm.DB, name string, owner *models.User, status *models.Status, collaborators ...*models.User) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:     name,
		OwnerID:  owner.ID,
		StatusID: status.ID,
	}
	require.NoError(t, db.Omit("Owner", "Status").Create(project).Error)
	for _, c := range collaborators {
		require.NoError(t, db.Model(project).Omit("Collaborators.*").Association("Collaborators").Append(c))
	}
	return project
}

func CreateTask(t *testing.T, db *gorm.DB, name string, project *models.Project, status *models.Status, assignee *models.User) *models.Task {
	t.Helper()
	task := &models.Task{
		Name:           name,
		ProjectID:      project.ID,
		StatusID:       status.ID,
		AssignedUserID: assignee.ID,
	}
	require.NoError(t, db.Omit("Project", "Status", "AssignedUser").Create(task).Error)
	return task
}
