package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/constants"
	"github.com/yukikurage/organiz-api/internal/models"
	"github.com/yukikurage/organiz-api/internal/repository"
	"github.com/yukikurage/organiz-api/internal/utils"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	auth     *AuthService
	projects *ProjectService
	statuses *StatusService
	log      logrus.FieldLogger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	auth *AuthService,
	projects *ProjectService,
	statuses *StatusService,
	log logrus.FieldLogger,
) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		auth:     auth,
		projects: projects,
		statuses: statuses,
		log:      log.WithField("component", "task"),
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name        string
	Description string
	ProjectID   uint64
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Name        *string
	Description *string
	StatusID    *uint64
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	UserID     uint64
	ProjectID  *uint64
	OnlyMy     bool
	Pagination utils.PaginationParams
}

// Create adds a task to a project visible to userID and assigns it to them.
// The "New" status must already exist; it is seeded with the first project.
func (s *TaskService) Create(ctx context.Context, userID uint64, input CreateTaskInput) (*models.Task, error) {
	user, err := s.auth.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindOneByID(ctx, userID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	status, err := s.statuses.FindByName(ctx, constants.StatusNew)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:           input.Name,
		Description:    input.Description,
		ProjectID:      project.ID,
		StatusID:       status.ID,
		AssignedUserID: user.ID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"task_id":    task.ID,
		"project_id": project.ID,
	}).Debug("Task created")
	return task, nil
}

// FindByID returns a task with its status and assignee. Any authenticated
// caller may read a task by id.
func (s *TaskService) FindByID(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID, "Status", "AssignedUser")
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "find task")
	}
	return task, nil
}

// FindAll returns the tasks of every project the user can see
func (s *TaskService) FindAll(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		UserID:     input.UserID,
		ProjectID:  input.ProjectID,
		Pagination: input.Pagination,
	}
	if input.OnlyMy {
		filter.AssignedUserID = &input.UserID
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies the fields that are present and differ from the stored ones
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findModifiable(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Name != nil && *input.Name != task.Name {
		task.Name = *input.Name
		changed = true
	}
	if input.Description != nil && *input.Description != task.Description {
		task.Description = *input.Description
		changed = true
	}
	if input.StatusID != nil && *input.StatusID != task.StatusID {
		status, err := s.statuses.FindOne(ctx, *input.StatusID)
		if err != nil {
			return nil, err
		}
		task.StatusID = status.ID
		changed = true
	}

	if changed {
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	return s.FindByID(ctx, task.ID)
}

// Delete soft deletes a task. Project owners and collaborators may do so.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uint64) (uint64, error) {
	task, err := s.findModifiable(ctx, userID, taskID)
	if err != nil {
		return 0, err
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}
	return task.ID, nil
}

// findModifiable loads a task and checks that userID owns or collaborates on
// its project. A task whose project was deleted is treated as missing.
func (s *TaskService) findModifiable(ctx context.Context, userID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID, "Project", "Project.Collaborators")
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "find task")
	}
	if task.Project.ID == 0 {
		return nil, ErrTaskNotFound
	}

	if !task.Project.CanAccess(userID) {
		return nil, ErrTaskPermissionDenied
	}
	return task, nil
}
