package dto

import (
	"github.com/samber/lo"
	"github.com/yukikurage/organiz-api/internal/models"
)

// UserDTO represents an account in API responses. Credentials never leave the service.
type UserDTO struct {
	ID        uint64 `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type CategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type StatusDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// IDResponse is returned by create and membership endpoints
type IDResponse struct {
	ID uint64 `json:"id"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	Token string `json:"token"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Email:     user.Email,
		Role:      user.Role,
	}
}

func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{ID: category.ID, Name: category.Name}
}

func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	return lo.Map(categories, func(c models.Category, _ int) CategoryDTO {
		return ToCategoryDTO(c)
	})
}

func ToStatusDTO(status models.Status) StatusDTO {
	return StatusDTO{ID: status.ID, Name: status.Name}
}

func ToStatusDTOs(statuses []models.Status) []StatusDTO {
	return lo.Map(statuses, func(s models.Status, _ int) StatusDTO {
		return ToStatusDTO(s)
	})
}
