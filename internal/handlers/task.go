package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/dto"
	apierrors "github.com/yukikurage/organiz-api/internal/errors"
	"github.com/yukikurage/organiz-api/internal/middleware"
	"github.com/yukikurage/organiz-api/internal/services"
	"github.com/yukikurage/organiz-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
	log         logrus.FieldLogger
}

func NewTaskHandler(taskService *services.TaskService, log logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// ListTasks returns the tasks of every project the caller can see.
// Can filter by projectId and onlyMy
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := optionalUintQuery(c, "projectId")
	if !ok {
		return
	}

	onlyMy := false
	if raw := c.Query("onlyMy"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid onlyMy")
			return
		}
		onlyMy = parsed
	}

	tasks, err := h.taskService.FindAll(c.Request.Context(), services.ListTasksInput{
		UserID:     userID,
		ProjectID:  projectID,
		OnlyMy:     onlyMy,
		Pagination: utils.GetPaginationParams(c),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, _ := middleware.GetResourceID(c)

	task, err := h.taskService.FindByID(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task assigned to the caller
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Name        string `json:"name" binding:"required,min=1,max=35"`
		Description string `json:"description"`
		ProjectID   uint64 `json:"projectId" binding:"required,gt=0"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), userID, services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.IDResponse{ID: task.ID})
}

// UpdateTask updates an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	taskID, _ := middleware.GetResourceID(c)

	type UpdateTaskRequest struct {
		Name        *string `json:"name" binding:"omitempty,min=1,max=35"`
		Description *string `json:"description"`
		StatusID    *uint64 `json:"statusId"`
	}

	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, taskID, services.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		StatusID:    req.StatusID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	taskID, _ := middleware.GetResourceID(c)

	id, err := h.taskService.Delete(c.Request.Context(), userID, taskID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, id)
}
