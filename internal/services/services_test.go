package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/organiz-api/internal/logging"
	"github.com/yukikurage/organiz-api/internal/models"
	"github.com/yukikurage/organiz-api/internal/repository"
	"github.com/yukikurage/organiz-api/internal/revocation"
	"github.com/yukikurage/organiz-api/internal/testutil"
	"github.com/yukikurage/organiz-api/internal/utils"
	"gorm.io/gorm"
)

const testPassword = "Strong-Password1!"

type serviceTestEnv struct {
	db         *gorm.DB
	ctx        context.Context
	auth       *AuthService
	categories *CategoryService
	statuses   *StatusService
	projects   *ProjectService
	tasks      *TaskService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()
	return newServiceTestEnv(t, nil)
}

// newServiceTestEnv wires every service over a fresh database. wrapStatuses,
// when set, decorates the status repository.
func newServiceTestEnv(t *testing.T, wrapStatuses func(repository.StatusRepository) repository.StatusRepository) serviceTestEnv {
	t.Helper()

	db := testutil.NewDB(t)
	log := logging.Discard()

	statusRepo := repository.NewStatusRepository(db)
	if wrapStatuses != nil {
		statusRepo = wrapStatuses(statusRepo)
	}

	auth := NewAuthService(
		repository.NewUserRepository(db),
		utils.NewTokenManager("test-secret", time.Hour),
		revocation.NewMemoryStore(),
		log,
	)
	categories := NewCategoryService(repository.NewCategoryRepository(db), log)
	statuses := NewStatusService(statusRepo, log)
	projects := NewProjectService(repository.NewProjectRepository(db), auth, categories, statuses, log)
	tasks := NewTaskService(repository.NewTaskRepository(db), auth, projects, statuses, log)

	return serviceTestEnv{
		db:         db,
		ctx:        context.Background(),
		auth:       auth,
		categories: categories,
		statuses:   statuses,
		projects:   projects,
		tasks:      tasks,
	}
}

func (env serviceTestEnv) register(t *testing.T, firstname, email string) *models.User {
	t.Helper()
	user, err := env.auth.Register(env.ctx, RegisterInput{
		Firstname: firstname,
		Lastname:  "Doe",
		Email:     email,
		Password:  testPassword,
	})
	require.NoError(t, err)
	return user
}

func (env serviceTestEnv) createProject(t *testing.T, name string, owner *models.User, categoryIDs ...uint64) *models.Project {
	t.Helper()
	project, err := env.projects.Create(env.ctx, CreateProjectInput{
		Name:        name,
		OwnerID:     owner.ID,
		CategoryIDs: categoryIDs,
	})
	require.NoError(t, err)
	return project
}
