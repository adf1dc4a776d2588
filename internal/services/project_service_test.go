package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/organiz-api/internal/constants"
	"github.com/yukikurage/organiz-api/internal/models"
	"github.com/yukikurage/organiz-api/internal/repository"
	"gorm.io/gorm"
)

func TestProjectService_FirstProjectSeedsStatuses(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.register(t, "John", "john@x.com")

	project := env.createProject(t, "P1", owner)

	statuses, err := env.statuses.FindAll(env.ctx)
	require.NoError(t, err)
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = st.Name
	}
	assert.ElementsMatch(t, constants.DefaultStatuses, names)

	found, err := env.projects.FindOneByID(env.ctx, owner.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusNew, found.Status.Name)
	assert.Equal(t, "John", found.Owner.Firstname)

	// A second project reuses the seeded rows.
	env.createProject(t, "P2", owner)
	statuses, err = env.statuses.FindAll(env.ctx)
	require.NoError(t, err)
	assert.Len(t, statuses, len(constants.DefaultStatuses))
}

// racingStatusRepository seeds the defaults itself right before reporting a
// duplicate key, as a concurrent request would.
type racingStatusRepository struct {
	repository.StatusRepository
}

func (r racingStatusRepository) EnsureNames(ctx context.Context, names []string) error {
	if err := r.StatusRepository.EnsureNames(ctx, names); err != nil {
		return err
	}
	return gorm.ErrDuplicatedKey
}

func TestProjectService_SeedingRaceReadsWinnerBack(t *testing.T) {
	env := newServiceTestEnv(t, func(repo repository.StatusRepository) repository.StatusRepository {
		return racingStatusRepository{StatusRepository: repo}
	})
	owner := env.register(t, "John", "john@x.com")

	project := env.createProject(t, "P1", owner)

	found, err := env.projects.FindOneByID(env.ctx, owner.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusNew, found.Status.Name)
}

func TestProjectService_CreateValidatesReferences(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.register(t, "John", "john@x.com")

	_, err := env.projects.Create(env.ctx, CreateProjectInput{Name: "P1", OwnerID: owner.ID + 100})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.projects.Create(env.ctx, CreateProjectInput{Name: "P1", OwnerID: owner.ID, CategoryIDs: []uint64{42}})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	projects, err := env.projects.FindAll(env.ctx, ListProjectsInput{UserID: owner.ID})
	require.NoError(t, err)
	assert.Empty(t, projects)

	env.createProject(t, "P1", owner)
	_, err = env.projects.Create(env.ctx, CreateProjectInput{Name: "P1", OwnerID: owner.ID})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProjectService_VisibilityFollowsCollaboration(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.register(t, "John", "john@x.com")
	guest := env.register(t, "Jane", "jane@x.com")
	project := env.createProject(t, "P1", owner)

	_, err := env.projects.FindOneByID(env.ctx, guest.ID, project.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	id, err := env.projects.AddUserToProject(env.ctx, project.ID, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, project.ID, id)

	found, err := env.projects.FindOneByID(env.ctx, guest.ID, project.ID)
	require.NoError(t, err)
	assert.True(t, found.IsCollaborator(guest.ID))

	// Adding again keeps a single membership.
	_, err = env.projects.AddUserToProject(env.ctx, project.ID, "jane@x.com")
	require.NoError(t, err)
	found, err = env.projects.FindOneByID(env.ctx, owner.ID, project.ID)
	require.NoError(t, err)
	assert.Len(t, found.Collaborators, 1)

	listed, err := env.projects.FindAll(env.ctx, ListProjectsInput{UserID: guest.ID})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	_, err = env.projects.AddUserToProject(env.ctx, project.ID, "nobody@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = env.projects.AddUserToProject(env.ctx, project.ID+100, "jane@x.com")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_DeleteIsOwnerOnly(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.register(t, "John", "john@x.com")
	guest := env.register(t, "Jane", "jane@x.com")
	project := env.createProject(t, "P1", owner)
	_, err := env.projects.AddUserToProject(env.ctx, project.ID, guest.Email)
	require.NoError(t, err)

	_, err = env.projects.DeleteByID(env.ctx, guest.ID, project.ID)
	assert.ErrorIs(t, err, ErrNotProjectOwner)
	assert.ErrorIs(t, err, ErrUnauthorized)

	id, err := env.projects.DeleteByID(env.ctx, owner.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, id)

	for _, user := range []*models.User{owner, guest} {
		_, err = env.projects.FindOneByID(env.ctx, user.ID, project.ID)
		assert.ErrorIs(t, err, ErrProjectNotFound)
	}
	_, err = env.projects.DeleteByID(env.ctx, owner.ID, project.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
	_, err = env.projects.AddUserToProject(env.ctx, project.ID, guest.Email)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_UpdateByID(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.register(t, "John", "john@x.com")
	backend, err := env.categories.Create(env.ctx, "backend")
	require.NoError(t, err)
	project := env.createProject(t, "P1", owner, backend.ID)
	completed, err := env.statuses.FindByName(env.ctx, constants.StatusCompleted)
	require.NoError(t, err)

	name := "P1 renamed"
	updated, err := env.projects.UpdateByID(env.ctx, owner.ID, project.ID, UpdateProjectInput{
		Name:     &name,
		StatusID: &completed.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, constants.StatusCompleted, updated.Status.Name)
	assert.Len(t, updated.Categories, 1, "omitted categories are left alone")

	missing := uint64(999)
	_, err = env.projects.UpdateByID(env.ctx, owner.ID, project.ID, UpdateProjectInput{StatusID: &missing})
	assert.ErrorIs(t, err, ErrStatusNotFound)
	_, err = env.projects.UpdateByID(env.ctx, owner.ID, project.ID, UpdateProjectInput{CategoryIDs: &[]uint64{missing}})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	updated, err = env.projects.UpdateByID(env.ctx, owner.ID, project.ID, UpdateProjectInput{CategoryIDs: &[]uint64{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Categories)
	assert.Equal(t, constants.StatusCompleted, updated.Status.Name)

	stranger := env.register(t, "Eve", "eve@x.com")
	_, err = env.projects.UpdateByID(env.ctx, stranger.ID, project.ID, UpdateProjectInput{Name: &name})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_FindAllByStatusName(t *testing.T) {
	env := setupServiceTestEnv(t)
	owner := env.register(t, "John", "john@x.com")
	env.createProject(t, "P1", owner)
	finished := env.createProject(t, "P2", owner)
	completed, err := env.statuses.FindByName(env.ctx, constants.StatusCompleted)
	require.NoError(t, err)
	_, err = env.projects.UpdateByID(env.ctx, owner.ID, finished.ID, UpdateProjectInput{StatusID: &completed.ID})
	require.NoError(t, err)

	name := constants.StatusCompleted
	projects, err := env.projects.FindAll(env.ctx, ListProjectsInput{UserID: owner.ID, StatusName: &name})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, finished.ID, projects[0].ID)
}
