package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/application/service"
	"github.com/sellweave/pos-api/internal/presentation/http/dto/request"
	"github.com/sellweave/pos-api/internal/presentation/http/dto/response"
	"github.com/sellweave/pos-api/pkg/pagination"
)

// DiscountSchemeHandler handles discount scheme HTTP requests
type DiscountSchemeHandler struct {
	schemeService *service.DiscountSchemeService
}

// NewDiscountSchemeHandler creates a new discount scheme handler
func NewDiscountSchemeHandler(schemeService *service.DiscountSchemeService) *DiscountSchemeHandler {
	return &DiscountSchemeHandler{schemeService: schemeService}
}

func schemeInputFromRequest(req *request.SchemeRequest) *service.SchemeInput {
	return &service.SchemeInput{
		Name:      req.Name,
		Type:      req.Type,
		Value:     req.Value,
		AppliesTo: req.AppliesTo,
		Target:    req.Target,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    req.Active,
	}
}

// Create handles creating a discount scheme
func (h *DiscountSchemeHandler) Create(c *gin.Context) {
	var req request.SchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	scheme, err := h.schemeService.CreateScheme(c.Request.Context(), schemeInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Discount scheme created successfully", scheme)
}

// Get handles getting a single discount scheme
func (h *DiscountSchemeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid scheme ID")
		return
	}

	scheme, err := h.schemeService.GetScheme(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount scheme retrieved successfully", scheme)
}

// Update handles replacing a discount scheme's definition
func (h *DiscountSchemeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid scheme ID")
		return
	}

	var req request.SchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	scheme, err := h.schemeService.UpdateScheme(c.Request.Context(), id, schemeInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount scheme updated successfully", scheme)
}

// Delete handles removing a discount scheme
func (h *DiscountSchemeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid scheme ID")
		return
	}

	if err := h.schemeService.DeleteScheme(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount scheme deleted successfully", nil)
}

// List handles listing discount schemes
func (h *DiscountSchemeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.schemeService.ListSchemes(c.Request.Context(), &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Discount schemes retrieved successfully", result)
}

// ListActive handles listing the schemes applicable right now
func (h *DiscountSchemeHandler) ListActive(c *gin.Context) {
	schemes, err := h.schemeService.ListActiveSchemes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active discount schemes retrieved successfully", schemes)
}
