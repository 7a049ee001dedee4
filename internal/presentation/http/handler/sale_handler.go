package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/application/service"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/sellweave/pos-api/internal/domain/repository"
	"github.com/sellweave/pos-api/internal/presentation/http/dto/response"
	"github.com/sellweave/pos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleHandler handles sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Finalize handles finalizing a sale against the terminal's open register
func (h *SaleHandler) Finalize(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		TerminalID string        `json:"terminal_id" binding:"required"`
		SaleType   enum.SaleType `json:"sale_type"`
		Items      []struct {
			ProductID uuid.UUID       `json:"product_id"`
			Quantity  decimal.Decimal `json:"quantity"`
		} `json:"items" binding:"required"`
		TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
		BillDiscount   decimal.Decimal `json:"bill_discount"`
		Shipping       decimal.Decimal `json:"shipping"`
		Payment        struct {
			Type       enum.PaymentType `json:"type"`
			Amount     decimal.Decimal  `json:"amount"`
			CustomerID *uuid.UUID       `json:"customer_id"`
		} `json:"payment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.SaleLineInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.SaleLineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	sale, err := h.saleService.FinalizeSale(c.Request.Context(), &service.FinalizeSaleInput{
		TerminalID:     req.TerminalID,
		UserID:         *userID,
		SaleType:       req.SaleType,
		Items:          items,
		TaxRatePercent: req.TaxRatePercent,
		BillDiscount:   req.BillDiscount,
		Shipping:       req.Shipping,
		Payment: service.PaymentInput{
			Type:       req.Payment.Type,
			Amount:     req.Payment.Amount,
			CustomerID: req.Payment.CustomerID,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale finalized successfully", sale)
}

// PriceCheck handles resolving the current unit price for a product
func (h *SaleHandler) PriceCheck(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	saleType := enum.SaleTypeRetail
	if st := c.Query("sale_type"); st != "" {
		saleType, err = enum.ParseSaleType(st)
		if err != nil {
			response.BadRequest(c, "Invalid sale_type")
			return
		}
	}

	result, err := h.saleService.PriceCheck(c.Request.Context(), id, saleType)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := gin.H{
		"product_id":   result.ProductID,
		"product_name": result.ProductName,
		"sale_type":    result.SaleType,
		"mrp":          result.MRP.StringFixed(2),
		"unit_price":   result.UnitPrice.StringFixed(2),
	}
	if result.SchemeName != nil {
		resp["scheme_name"] = *result.SchemeName
	}
	response.OK(c, "Price resolved successfully", resp)
}

// Get handles getting a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// List handles listing finalized sales
func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		TerminalID: c.Query("terminal_id"),
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}
