package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/yukikurage/organiz-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID            uint64        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Owner         *UserDTO      `json:"owner,omitempty"`
	Status        *StatusDTO    `json:"status,omitempty"`
	Categories    []CategoryDTO `json:"categories"`
	Collaborators []UserDTO     `json:"collaborators,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Categories:  ToCategoryDTOs(project.Categories),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	if project.Owner.ID != 0 {
		owner := ToUserDTO(project.Owner)
		dto.Owner = &owner
	}
	if project.Status.ID != 0 {
		status := ToStatusDTO(project.Status)
		dto.Status = &status
	}
	if len(project.Collaborators) > 0 {
		dto.Collaborators = lo.Map(project.Collaborators, func(u models.User, _ int) UserDTO {
			return ToUserDTO(u)
		})
	}

	return dto
}

func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	return lo.Map(projects, func(p models.Project, _ int) ProjectDTO {
		return ToProjectDTO(p)
	})
}
