package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/organiz-api/internal/models"
	"github.com/yukikurage/organiz-api/internal/testutil"
	"github.com/yukikurage/organiz-api/internal/utils"
	"gorm.io/gorm"
)

type ProjectRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	repo  ProjectRepository
	ctx   context.Context
	owner *models.User
	other *models.User
	newSt *models.Status
	done  *models.Status
}

func (s *ProjectRepositoryTestSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	s.repo = NewProjectRepository(s.db)
	s.ctx = context.Background()
	s.owner = testutil.CreateUser(s.T(), s.db, "John", "john@x.com")
	s.other = testutil.CreateUser(s.T(), s.db, "Jane", "jane@x.com")
	s.newSt = testutil.CreateStatus(s.T(), s.db, "New")
	s.done = testutil.CreateStatus(s.T(), s.db, "Completed")
}

func (s *ProjectRepositoryTestSuite) TestCreate_LinksCategoriesWithoutUpserting() {
	backend := testutil.CreateCategory(s.T(), s.db, "backend")

	project := &models.Project{
		Name:       "P1",
		OwnerID:    s.owner.ID,
		StatusID:   s.newSt.ID,
		Categories: []models.Category{{ID: backend.ID, Name: "renamed"}},
	}
	s.Require().NoError(s.repo.Create(s.ctx, project))
	s.NotZero(project.ID)

	found, err := s.repo.FindVisibleByID(s.ctx, s.owner.ID, project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Categories, 1)
	s.Equal("backend", found.Categories[0].Name)
	s.Equal("John", found.Owner.Firstname)
	s.Equal("New", found.Status.Name)
	s.Empty(found.Collaborators)
}

func (s *ProjectRepositoryTestSuite) TestFindVisibleByID_HidesFromStrangers() {
	project := testutil.CreateProject(s.T(), s.db, "P1", s.owner, s.newSt)

	_, err := s.repo.FindVisibleByID(s.ctx, s.other.ID, project.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	s.Require().NoError(s.repo.AddCollaborator(s.ctx, project, s.other))

	found, err := s.repo.FindVisibleByID(s.ctx, s.other.ID, project.ID)
	s.Require().NoError(err)
	s.True(found.IsCollaborator(s.other.ID))
}

func (s *ProjectRepositoryTestSuite) TestList_OwnedAndShared() {
	owned := testutil.CreateProject(s.T(), s.db, "Owned", s.owner, s.newSt)
	shared := testutil.CreateProject(s.T(), s.db, "Shared", s.other, s.done, s.owner)
	testutil.CreateProject(s.T(), s.db, "Private", s.other, s.newSt)

	projects, err := s.repo.List(s.ctx, ProjectFilter{UserID: s.owner.ID})
	s.Require().NoError(err)
	s.Require().Len(projects, 2)
	s.Equal(owned.ID, projects[0].ID)
	s.Equal(shared.ID, projects[1].ID)
	s.Equal("Completed", projects[1].Status.Name)
}

func (s *ProjectRepositoryTestSuite) TestList_FiltersByStatusName() {
	testutil.CreateProject(s.T(), s.db, "Fresh", s.owner, s.newSt)
	finished := testutil.CreateProject(s.T(), s.db, "Finished", s.owner, s.done)

	name := "Completed"
	projects, err := s.repo.List(s.ctx, ProjectFilter{UserID: s.owner.ID, StatusName: &name})
	s.Require().NoError(err)
	s.Require().Len(projects, 1)
	s.Equal(finished.ID, projects[0].ID)

	missing := "Archived"
	projects, err = s.repo.List(s.ctx, ProjectFilter{UserID: s.owner.ID, StatusName: &missing})
	s.Require().NoError(err)
	s.Empty(projects)
}

func (s *ProjectRepositoryTestSuite) TestList_Paginates() {
	for _, name := range []string{"A", "B", "C"} {
		testutil.CreateProject(s.T(), s.db, name, s.owner, s.newSt)
	}

	projects, err := s.repo.List(s.ctx, ProjectFilter{
		UserID:     s.owner.ID,
		Pagination: utils.PaginationParams{Page: 2, Limit: 2, Offset: 2},
	})
	s.Require().NoError(err)
	s.Require().Len(projects, 1)
	s.Equal("C", projects[0].Name)
}

func (s *ProjectRepositoryTestSuite) TestDelete_ExcludesFromReads() {
	project := testutil.CreateProject(s.T(), s.db, "P1", s.owner, s.newSt)

	s.Require().NoError(s.repo.Delete(s.ctx, project.ID))

	_, err := s.repo.FindByID(s.ctx, project.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
	_, err = s.repo.FindVisibleByID(s.ctx, s.owner.ID, project.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	projects, err := s.repo.List(s.ctx, ProjectFilter{UserID: s.owner.ID})
	s.Require().NoError(err)
	s.Empty(projects)
}

func (s *ProjectRepositoryTestSuite) TestUpdate_ReplacesAndClearsCategories() {
	backend := testutil.CreateCategory(s.T(), s.db, "backend")
	frontend := testutil.CreateCategory(s.T(), s.db, "frontend")
	project := testutil.CreateProject(s.T(), s.db, "P1", s.owner, s.newSt)

	project.Name = "P1 renamed"
	project.Categories = []models.Category{*backend, *frontend}
	s.Require().NoError(s.repo.Update(s.ctx, project, true))

	found, err := s.repo.FindByID(s.ctx, project.ID, "Categories")
	s.Require().NoError(err)
	s.Equal("P1 renamed", found.Name)
	s.Len(found.Categories, 2)

	// Without replaceCategories the links survive an empty slice.
	found.Categories = nil
	found.Description = "kept"
	s.Require().NoError(s.repo.Update(s.ctx, found, false))
	found, err = s.repo.FindByID(s.ctx, project.ID, "Categories")
	s.Require().NoError(err)
	s.Len(found.Categories, 2)

	found.Categories = []models.Category{}
	s.Require().NoError(s.repo.Update(s.ctx, found, true))
	found, err = s.repo.FindByID(s.ctx, project.ID, "Categories")
	s.Require().NoError(err)
	s.Empty(found.Categories)
	s.Equal("kept", found.Description)
}

func (s *ProjectRepositoryTestSuite) TestAddCollaborator_KeepsOneLinkPerAccount() {
	project := testutil.CreateProject(s.T(), s.db, "P1", s.owner, s.newSt)

	s.Require().NoError(s.repo.AddCollaborator(s.ctx, project, s.other))
	s.Require().NoError(s.repo.AddCollaborator(s.ctx, project, s.other))

	var links int64
	s.Require().NoError(s.db.Table("user_accounts_projects").Where("project_id = ?", project.ID).Count(&links).Error)
	s.Equal(int64(1), links)
}

func TestProjectRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRepositoryTestSuite))
}

func TestProjectRepository_CreateDuplicateName(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProjectRepository(db)
	owner := testutil.CreateUser(t, db, "John", "john@x.com")
	status := testutil.CreateStatus(t, db, "New")

	require.NoError(t, repo.Create(context.Background(), &models.Project{Name: "P1", OwnerID: owner.ID, StatusID: status.ID}))
	err := repo.Create(context.Background(), &models.Project{Name: "P1", OwnerID: owner.ID, StatusID: status.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
