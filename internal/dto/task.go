package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/yukikurage/organiz-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ProjectID    uint64     `json:"projectId"`
	Status       *StatusDTO `json:"status,omitempty"`
	AssignedUser *UserDTO   `json:"assignedUser,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include status if preloaded
	if task.Status.ID != 0 {
		status := ToStatusDTO(task.Status)
		dto.Status = &status
	}

	// Include assignee if preloaded
	if task.AssignedUser.ID != 0 {
		user := ToUserDTO(task.AssignedUser)
		dto.AssignedUser = &user
	}

	return dto
}

func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	return lo.Map(tasks, func(t models.Task, _ int) TaskDTO {
		return ToTaskDTO(t)
	})
}
