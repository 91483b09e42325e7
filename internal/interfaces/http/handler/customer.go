package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/poslite/backend/internal/infrastructure/docstore"
	"github.com/poslite/backend/internal/infrastructure/persistence"
	"github.com/poslite/backend/internal/interfaces/http/dto"
)

// CustomerHandler handles customer API endpoints. Customers are owned
// directly by the principal, with no outlet scoping.
type CustomerHandler struct {
	BaseHandler
	repo *persistence.ScopedDocumentRepository
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(store docstore.Store) *CustomerHandler {
	return &CustomerHandler{
		repo: persistence.NewScopedDocumentRepository(store, persistence.CustomersCollection),
	}
}

// CreateCustomerRequest represents a request to create a new customer
// @Description Request body for creating a new customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200" example:"Jane Doe"`
	Email   string `json:"email" binding:"omitempty,email" example:"jane@example.com"`
	Phone   string `json:"phone" binding:"max=50" example:"+1-555-0101"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateCustomerRequest represents a partial update to a customer
// @Description Request body for updating a customer; omitted fields are left unchanged
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// List godoc
// @Summary      List customers
// @Description  List all customers owned by the authenticated user
// @Tags         customers
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	docs, err := h.repo.List(c.Request.Context(), p.OwnerFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, docs, len(docs))
}

// GetByID godoc
// @Summary      Get customer by ID
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid customer ID")
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
// @Summary      Create a new customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body CreateCustomerRequest true "Customer creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	doc, err := h.repo.Create(c.Request.Context(), p, docstore.Document{
		"name":    req.Name,
		"email":   req.Email,
		"phone":   req.Phone,
		"address": req.Address,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, doc)
}

// Update godoc
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        request body UpdateCustomerRequest true "Customer update request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	fields := docstore.Document{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}

	doc, err := h.repo.Update(c.Request.Context(), p, idReq.ID, fields)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// Delete godoc
// @Summary      Delete a customer
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), p, req.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Customer deleted successfully"})
}
