package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/models"
	"github.com/yukikurage/organiz-api/internal/repository"
	"github.com/yukikurage/organiz-api/internal/utils"
	"gorm.io/gorm"
)

var ErrProjectNameTaken = fmt.Errorf("%w: project name already exists", ErrConflict)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	auth        *AuthService
	categories  *CategoryService
	statuses    *StatusService
	log         logrus.FieldLogger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	auth *AuthService,
	categories *CategoryService,
	statuses *StatusService,
	log logrus.FieldLogger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		auth:        auth,
		categories:  categories,
		statuses:    statuses,
		log:         log.WithField("component", "project"),
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	CategoryIDs []uint64
	OwnerID     uint64
}

// UpdateProjectInput holds the fields to patch. Nil means "leave unchanged";
// a non-nil empty CategoryIDs clears the categories.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	StatusID    *uint64
	CategoryIDs *[]uint64
}

// ListProjectsInput represents filters for listing projects
type ListProjectsInput struct {
	UserID     uint64
	StatusName *string
	Pagination utils.PaginationParams
}

// Create persists a new project owned by OwnerID with status "New".
// Nothing is written unless every referenced row resolves.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	owner, err := s.auth.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	status, err := s.statuses.InitialStatus(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.FindMany(ctx, input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     owner.ID,
		StatusID:    status.ID,
		Categories:  categories,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProjectNameTaken
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"project_id": project.ID,
		"owner_id":   owner.ID,
	}).Info("Project created")
	return project, nil
}

// FindAll returns the projects the user owns or collaborates on
func (s *ProjectService) FindAll(ctx context.Context, input ListProjectsInput) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx, repository.ProjectFilter{
		UserID:     input.UserID,
		StatusName: input.StatusName,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// FindOneByID returns a project visible to the user. Projects the user
// cannot see are reported as not found.
func (s *ProjectService) FindOneByID(ctx context.Context, userID, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindVisibleByID(ctx, userID, projectID)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "find project")
	}
	return project, nil
}

// UpdateByID applies the fields that are present and differ from the stored ones.
func (s *ProjectService) UpdateByID(ctx context.Context, userID, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.FindOneByID(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Name != nil && *input.Name != project.Name {
		project.Name = *input.Name
		changed = true
	}
	if input.Description != nil && *input.Description != project.Description {
		project.Description = *input.Description
		changed = true
	}
	if input.StatusID != nil && *input.StatusID != project.StatusID {
		status, err := s.statuses.FindOne(ctx, *input.StatusID)
		if err != nil {
			return nil, err
		}
		project.StatusID = status.ID
		project.Status = *status
		changed = true
	}

	replaceCategories := false
	if input.CategoryIDs != nil {
		categories, err := s.categories.FindMany(ctx, *input.CategoryIDs)
		if err != nil {
			return nil, err
		}
		project.Categories = categories
		replaceCategories = true
	}

	if !changed && !replaceCategories {
		return project, nil
	}

	if err := s.projectRepo.Update(ctx, project, replaceCategories); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProjectNameTaken
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.FindOneByID(ctx, userID, projectID)
}

// DeleteByID soft deletes a project. Only its owner may do so.
func (s *ProjectService) DeleteByID(ctx context.Context, userID, projectID uint64) (uint64, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID, "Owner")
	if err != nil {
		return 0, notFound(err, ErrProjectNotFound, "find project")
	}

	if !project.IsOwner(userID) {
		return 0, ErrNotProjectOwner
	}

	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		return 0, fmt.Errorf("failed to delete project: %w", err)
	}

	s.log.WithField("project_id", project.ID).Info("Project deleted")
	return project.ID, nil
}

// AddUserToProject shares the project with the account registered under
// email. Adding an existing collaborator is a no-op.
func (s *ProjectService) AddUserToProject(ctx context.Context, projectID uint64, email string) (uint64, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID, "Collaborators")
	if err != nil {
		return 0, notFound(err, ErrProjectNotFound, "find project")
	}

	user, err := s.auth.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}

	if project.IsCollaborator(user.ID) {
		return project.ID, nil
	}

	if err := s.projectRepo.AddCollaborator(ctx, project, user); err != nil {
		return 0, fmt.Errorf("failed to add collaborator: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"project_id": project.ID,
		"user_id":    user.ID,
	}).Info("Collaborator added")
	return project.ID, nil
}
