package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/dto"
	"github.com/yukikurage/organiz-api/internal/middleware"
	"github.com/yukikurage/organiz-api/internal/services"
)

type statusRequest struct {
	Name string `json:"name" binding:"required,min=1,max=25"`
}

type StatusHandler struct {
	statusService *services.StatusService
	log             logrus.FieldLogger
}

func NewStatusHandler(statusService *services.StatusService, log logrus.FieldLogger) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
		log:             log,
	}
}

// CreateStatus creates a new status
func (h *StatusHandler) CreateStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.statusService.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.IDResponse{ID: status.ID})
}

// ListStatuses returns every status
func (h *StatusHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.statusService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusDTOs(statuses))
}

func (h *StatusHandler) GetStatus(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	status, err := h.statusService.FindOne(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusDTO(*status))
}

func (h *StatusHandler) UpdateStatus(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.statusService.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusDTO(*status))
}

// DeleteStatus soft deletes a status and answers its id
func (h *StatusHandler) DeleteStatus(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	deleted, err := h.statusService.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, deleted)
}
