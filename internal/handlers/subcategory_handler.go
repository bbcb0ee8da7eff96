package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yns1000/haybank/internal/services"
)

// SubCategoryHandler handles sub-category requests.
type SubCategoryHandler struct {
	subCategoryService services.SubCategoryServicer
	auditService       services.AuditServicer
}

// NewSubCategoryHandler creates a new SubCategoryHandler
func NewSubCategoryHandler(subCategoryService services.SubCategoryServicer, auditService services.AuditServicer) *SubCategoryHandler {
	return &SubCategoryHandler{subCategoryService: subCategoryService, auditService: auditService}
}

// CreateSubCategoryRequest represents the request payload for creating a sub-category.
type CreateSubCategoryRequest struct {
	Name       string `json:"name" binding:"max=100"`
	CategoryID uint   `json:"categoryId" binding:"required"`
}

// UpdateSubCategoryRequest represents the request payload for updating a sub-category.
type UpdateSubCategoryRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	CategoryID *uint   `json:"categoryId" binding:"omitempty,gt=0"`
}

// SubCategoryQuery holds the optional list filter.
type SubCategoryQuery struct {
	CategoryID *uint `form:"categoryId" binding:"omitempty,gt=0"`
}

// CreateSubCategory handles creation of a sub-category
// @Summary     Create a sub-category
// @Tags        subcategories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSubCategoryRequest true "Sub-category"
// @Success     201 {object} models.SubCategory
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Parent category not found"
// @Failure     409 {object} ErrorResponse "Duplicate sub-category"
// @Router      /subcategories [post]
func (h *SubCategoryHandler) CreateSubCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSubCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	sub, err := h.subCategoryService.CreateSubCategory(ctx, req.Name, req.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "CREATE_SUBCATEGORY", "subcategory", sub.ID, c.ClientIP(),
		map[string]interface{}{"name": sub.Name, "categoryId": sub.CategoryID})

	c.JSON(http.StatusCreated, gin.H{"subCategory": sub})
}

// GetSubCategories lists sub-categories, optionally of one category
// @Summary     List sub-categories
// @Tags        subcategories
// @Produce     json
// @Security    BearerAuth
// @Param       categoryId query int false "Parent category"
// @Param       page       query int false "Page number"
// @Param       pageSize   query int false "Page size"
// @Success     200 {array} models.SubCategory
// @Success     204 "No sub-categories"
// @Router      /subcategories [get]
func (h *SubCategoryHandler) GetSubCategories(c *gin.Context) {
	var query SubCategoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, invalidQuery(err))
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subs, err := h.subCategoryService.ListSubCategories(c.Request.Context(), query.CategoryID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondList(c, "subCategories", subs)
}

// GetSubCategoryByID returns one sub-category
// @Summary     Get a sub-category
// @Tags        subcategories
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sub-category ID"
// @Success     200 {object} models.SubCategory
// @Failure     404 {object} ErrorResponse "Sub-category not found"
// @Router      /subcategories/{id} [get]
func (h *SubCategoryHandler) GetSubCategoryByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	sub, err := h.subCategoryService.GetSubCategory(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subCategory": sub})
}

// UpdateSubCategory renames or re-parents a sub-category
// @Summary     Update a sub-category
// @Tags        subcategories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Sub-category ID"
// @Param       request body UpdateSubCategoryRequest true "Fields to change"
// @Success     200 {object} models.SubCategory
// @Success     304 "Nothing changed"
// @Failure     404 {object} ErrorResponse "Sub-category or category not found"
// @Failure     409 {object} ErrorResponse "Duplicate sub-category"
// @Router      /subcategories/{id} [put]
func (h *SubCategoryHandler) UpdateSubCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSubCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	sub, err := h.subCategoryService.UpdateSubCategory(ctx, id, services.SubCategoryUpdate{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "UPDATE_SUBCATEGORY", "subcategory", sub.ID, c.ClientIP(),
		map[string]interface{}{"name": sub.Name, "categoryId": sub.CategoryID})

	c.JSON(http.StatusOK, gin.H{"subCategory": sub})
}

// DeleteSubCategory deletes an unused sub-category
// @Summary     Delete a sub-category
// @Tags        subcategories
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sub-category ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Sub-category not found"
// @Failure     409 {object} ErrorResponse "Sub-category in use"
// @Router      /subcategories/{id} [delete]
func (h *SubCategoryHandler) DeleteSubCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.subCategoryService.DeleteSubCategory(ctx, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "DELETE_SUBCATEGORY", "subcategory", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Sub-category deleted"})
}
