package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/poslite/backend/internal/infrastructure/docstore"
	"github.com/poslite/backend/internal/infrastructure/persistence"
	"github.com/poslite/backend/internal/interfaces/http/dto"
)

// OutletHandler handles outlet API endpoints. An outlet belongs to exactly
// one principal and anchors the scoping of products and categories.
type OutletHandler struct {
	BaseHandler
	repo *persistence.ScopedDocumentRepository
}

// NewOutletHandler creates a new OutletHandler
func NewOutletHandler(store docstore.Store) *OutletHandler {
	return &OutletHandler{
		repo: persistence.NewScopedDocumentRepository(store, persistence.OutletsCollection),
	}
}

// CreateOutletRequest represents a request to create a new outlet
// @Description Request body for creating a new outlet
type CreateOutletRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200" example:"Downtown Store"`
	Address string `json:"address" binding:"max=500" example:"1 Main St"`
	Phone   string `json:"phone" binding:"max=50" example:"+1-555-0100"`
}

// UpdateOutletRequest represents a partial update to an outlet
// @Description Request body for updating an outlet; omitted fields are left unchanged
type UpdateOutletRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
}

// List godoc
// @Summary      List outlets
// @Description  List all outlets owned by the authenticated user
// @Tags         outlets
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /outlets [get]
func (h *OutletHandler) List(c *gin.Context) {
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
// @Summary      Get outlet by ID
// @Tags         outlets
// @Produce      json
// @Param        id path string true "Outlet ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /outlets/{id} [get]
func (h *OutletHandler) GetByID(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid outlet ID")
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
// @Summary      Create a new outlet
// @Tags         outlets
// @Accept       json
// @Produce      json
// @Param        request body CreateOutletRequest true "Outlet creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /outlets [post]
func (h *OutletHandler) Create(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CreateOutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	doc, err := h.repo.Create(c.Request.Context(), p, docstore.Document{
		"name":    req.Name,
		"address": req.Address,
		"phone":   req.Phone,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, doc)
}

// Update godoc
// @Summary      Update an outlet
// @Description  Partially update an outlet; omitted fields keep their value
// @Tags         outlets
// @Accept       json
// @Produce      json
// @Param        id path string true "Outlet ID"
// @Param        request body UpdateOutletRequest true "Outlet update request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /outlets/{id} [put]
func (h *OutletHandler) Update(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid outlet ID")
		return
	}

	var req UpdateOutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	fields := docstore.Document{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}

	doc, err := h.repo.Update(c.Request.Context(), p, idReq.ID, fields)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// Delete godoc
// @Summary      Delete an outlet
// @Description  Delete an outlet. Products in the outlet are not cascaded.
// @Tags         outlets
// @Produce      json
// @Param        id path string true "Outlet ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /outlets/{id} [delete]
func (h *OutletHandler) Delete(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid outlet ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), p, req.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Outlet deleted successfully"})
}
