package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventsphere/backend/internal/helpers"
	"github.com/eventsphere/backend/internal/services"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid category ID.")
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) List(c *gin.Context) {
	skip, limit, err := helpers.Pagination(c, 100)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters.")
		return
	}

	categories, total, err := h.categories.List(c.Request.Context(), skip, limit)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": categories,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid category ID.")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	category, err := h.categories.Update(c.Request.Context(), id, services.CategoryUpdate{Name: req.Name})
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid category ID.")
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully."})
}
