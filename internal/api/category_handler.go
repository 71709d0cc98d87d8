package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizboard-backend-go/internal/core"
	"bizboard-backend-go/internal/models"
)

// CategoryHandler serves /api/categories.
type CategoryHandler struct {
	categoryService core.CategoryService
	resp            responder
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(cs core.CategoryService, resp responder) *CategoryHandler {
	return &CategoryHandler{categoryService: cs, resp: resp}
}

// ListCategories returns every main category with its subcategories nested.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.resp.fail(c, err, "Failed to retrieve categories")
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory handles GET /api/categories/:id.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.resp.fail(c, err, "Failed to retrieve category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory creates a main category, or a subcategory when parentId is set.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if !bindJSON(c, &req, "Category name is required") {
		return
	}

	id, err := h.categoryService.Create(c.Request.Context(), req.Name, req.ParentID)
	if err != nil {
		h.resp.fail(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, CategoryCreatedResponse{
		Message:    "Category created successfully",
		CategoryID: id,
		ParentID:   req.ParentID,
	})
}

// RenameCategory handles PUT /api/categories/:id and reports how many
// businesses had their mainCategoryName rewritten.
func (h *CategoryHandler) RenameCategory(c *gin.Context) {
	var req models.RenameCategoryRequest
	if !bindJSON(c, &req, "Category name is required for update") {
		return
	}

	updated, err := h.categoryService.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.resp.fail(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, CategoryRenamedResponse{Message: "Category updated successfully", BusinessesUpdated: updated})
}

// RenameSubcategory handles PUT /api/categories/:id/subcategories/:subId.
func (h *CategoryHandler) RenameSubcategory(c *gin.Context) {
	var req models.RenameCategoryRequest
	if !bindJSON(c, &req, "Subcategory name is required for update") {
		return
	}

	updated, err := h.categoryService.RenameSubcategory(c.Request.Context(), c.Param("id"), c.Param("subId"), req.Name)
	if err != nil {
		h.resp.fail(c, err, "Failed to update subcategory")
		return
	}
	c.JSON(http.StatusOK, CategoryRenamedResponse{Message: "Subcategory updated successfully", BusinessesUpdated: updated})
}

// DeleteCategory removes the category and all of its subcategories.
// Businesses that reference it keep their denormalized names.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.resp.fail(c, err, "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Category and its subcategories deleted successfully"})
}

// DeleteSubcategory handles DELETE /api/categories/:id/subcategories/:subId.
func (h *CategoryHandler) DeleteSubcategory(c *gin.Context) {
	if err := h.categoryService.DeleteSubcategory(c.Request.Context(), c.Param("id"), c.Param("subId")); err != nil {
		h.resp.fail(c, err, "Failed to delete subcategory")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Subcategory deleted successfully"})
}
