package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/dto"
	"github.com/yukikurage/organiz-api/internal/middleware"
	"github.com/yukikurage/organiz-api/internal/services"
)

type categoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=35"`
}

type CategoryHandler struct {
	categoryService *services.CategoryService
	log             logrus.FieldLogger
}

func NewCategoryHandler(categoryService *services.CategoryService, log logrus.FieldLogger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		log:             log,
	}
}

// CreateCategory creates a new category
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.IDResponse{ID: category.ID})
}

// ListCategories returns every category
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTOs(categories))
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	category, err := h.categoryService.FindOne(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// DeleteCategory soft deletes a category and answers its id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, _ := middleware.GetResourceID(c)

	deleted, err := h.categoryService.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, deleted)
}
