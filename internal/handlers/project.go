package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/dto"
	apierrors "github.com/yukikurage/organiz-api/internal/errors"
	"github.com/yukikurage/organiz-api/internal/middleware"
	"github.com/yukikurage/organiz-api/internal/services"
	"github.com/yukikurage/organiz-api/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	log            logrus.FieldLogger
}

func NewProjectHandler(projectService *services.ProjectService, log logrus.FieldLogger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		log:            log,
	}
}

// CreateProject creates a project owned by the caller
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name        string   `json:"name" binding:"required,min=1,max=55"`
		Description string   `json:"description"`
		Categories  []uint64 `json:"categories"`
	}

	var req CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryIDs: req.Categories,
		OwnerID:     userID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.IDResponse{ID: project.ID})
}

// ListProjects returns the projects the caller owns or collaborates on.
// Optional statusName filter; page/limit paginate.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := services.ListProjectsInput{
		UserID:     userID,
		Pagination: utils.GetPaginationParams(c),
	}
	if statusName, ok := c.GetQuery("statusName"); ok && statusName != "" {
		input.StatusName = &statusName
	}

	projects, err := h.projectService.FindAll(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	projectID, _ := middleware.GetResourceID(c)

	project, err := h.projectService.FindOneByID(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// UpdateProject patches the fields present in the body
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	projectID, _ := middleware.GetResourceID(c)

	type UpdateProjectRequest struct {
		Name        *string   `json:"name" binding:"omitempty,min=1,max=55"`
		Description *string   `json:"description"`
		Categories  *[]uint64 `json:"categories"`
		Status      *uint64   `json:"status"`
	}

	var req UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.UpdateByID(c.Request.Context(), userID, projectID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StatusID:    req.Status,
		CategoryIDs: req.Categories,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// AddCollaborator shares the project with the account given by ?email=
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	projectID, _ := middleware.GetResourceID(c)

	email := c.Query("email")
	if email == "" {
		apierrors.BadRequest(c, "email query parameter is required")
		return
	}

	id, err := h.projectService.AddUserToProject(c.Request.Context(), projectID, email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.IDResponse{ID: id})
}

// DeleteProject soft deletes a project owned by the caller
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	projectID, _ := middleware.GetResourceID(c)

	id, err := h.projectService.DeleteByID(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, id)
}
