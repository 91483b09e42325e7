package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/poslite/backend/internal/infrastructure/docstore"
	"github.com/poslite/backend/internal/infrastructure/persistence"
	"github.com/poslite/backend/internal/interfaces/http/dto"
)

// ProductHandler handles product API endpoints. A product belongs to exactly
// one outlet, so listing filters on scalar outlet equality.
type ProductHandler struct {
	BaseHandler
	repo *persistence.ScopedDocumentRepository
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(store docstore.Store) *ProductHandler {
	return &ProductHandler{
		repo: persistence.NewScopedDocumentRepository(store, persistence.ProductsCollection),
	}
}

// CreateProductRequest represents a request to create a new product
// @Description Request body for creating a new product
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200" example:"Cola"`
	OutletID    string   `json:"outletId" binding:"required" example:"O1"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0" example:"2.5"`
	SKU         string   `json:"sku" binding:"max=100" example:"COLA-330"`
	CategoryID  string   `json:"categoryId" binding:"omitempty" example:"C1"`
	Description string   `json:"description" binding:"max=2000"`
}

// UpdateProductRequest represents a partial update to a product
// @Description Request body for updating a product; omitted fields are left unchanged
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=200"`
	OutletID    *string  `json:"outletId" binding:"omitempty,min=1"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	SKU         *string  `json:"sku" binding:"omitempty,max=100"`
	CategoryID  *string  `json:"categoryId" binding:"omitempty"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
}

// listProductsQuery carries the required outlet scope for listing
type listProductsQuery struct {
	OutletID string `form:"outletId" binding:"required"`
}

// List godoc
// @Summary      List products for an outlet
// @Description  List the authenticated user's products in the given outlet
// @Tags         products
// @Produce      json
// @Param        outletId query string true "Outlet ID the products belong to"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var query listProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Query parameter outletId is required")
		return
	}

	docs, err := h.repo.List(c.Request.Context(), p.OutletFilter(query.OutletID))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, docs, len(docs))
}

// GetByID godoc
// @Summary      Get product by ID
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
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
// @Summary      Create a new product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body CreateProductRequest true "Product creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	fields := docstore.Document{
		"name":        req.Name,
		"outletId":    req.OutletID,
		"sku":         req.SKU,
		"categoryId":  req.CategoryID,
		"description": req.Description,
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}

	doc, err := h.repo.Create(c.Request.Context(), p, fields)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, doc)
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body UpdateProductRequest true "Product update request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	fields := docstore.Document{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.OutletID != nil {
		fields["outletId"] = *req.OutletID
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.SKU != nil {
		fields["sku"] = *req.SKU
	}
	if req.CategoryID != nil {
		fields["categoryId"] = *req.CategoryID
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	doc, err := h.repo.Update(c.Request.Context(), p, idReq.ID, fields)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), p, req.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Product deleted successfully"})
}
