package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/poslite/backend/internal/infrastructure/docstore"
	"github.com/poslite/backend/internal/infrastructure/persistence"
	"github.com/poslite/backend/internal/interfaces/http/dto"
)

// CategoryHandler handles category API endpoints. A category can be visible
// under several outlets at once, so it carries a list of outlet IDs and
// listing uses array-membership matching.
type CategoryHandler struct {
	BaseHandler
	repo *persistence.ScopedDocumentRepository
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(store docstore.Store) *CategoryHandler {
	return &CategoryHandler{
		repo: persistence.NewScopedDocumentRepository(store, persistence.CategoriesCollection),
	}
}

// CreateCategoryRequest represents a request to create a new category
// @Description Request body for creating a new category
type CreateCategoryRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=100" example:"Drinks"`
	OutletIDs []string `json:"outletIds" binding:"required,min=1,dive,required" example:"O1,O2"`
}

// UpdateCategoryRequest represents a partial update to a category
// @Description Request body for updating a category; omitted fields are left unchanged
type UpdateCategoryRequest struct {
	Name      *string   `json:"name" binding:"omitempty,min=1,max=100"`
	OutletIDs *[]string `json:"outletIds" binding:"omitempty,min=1,dive,required"`
}

// listCategoriesQuery carries the required outlet scope for listing
type listCategoriesQuery struct {
	OutletID string `form:"outletId" binding:"required"`
}

// List godoc
// @Summary      List categories for an outlet
// @Description  List the authenticated user's categories visible under the given outlet
// @Tags         categories
// @Produce      json
// @Param        outletId query string true "Outlet ID the categories must be visible under"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var query listCategoriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		// Required scope parameter missing: reject before any store access
		h.BadRequest(c, "Query parameter outletId is required")
		return
	}

	docs, err := h.repo.List(c.Request.Context(), p.OutletMembershipFilter(query.OutletID))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, docs, len(docs))
}

// GetByID godoc
// @Summary      Get category by ID
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	doc, err := h.repo.Get(c.Request.Context(), p, req.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// Create godoc
// @Summary      Create a new category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body CreateCategoryRequest true "Category creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	doc, err := h.repo.Create(c.Request.Context(), p, docstore.Document{
		"name":      req.Name,
		"outletIds": req.OutletIDs,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, doc)
}

// Update godoc
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID"
// @Param        request body UpdateCategoryRequest true "Category update request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	fields := docstore.Document{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.OutletIDs != nil {
		fields["outletIds"] = *req.OutletIDs
	}

	doc, err := h.repo.Update(c.Request.Context(), p, idReq.ID, fields)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// Delete godoc
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), p, req.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Category deleted successfully"})
}
