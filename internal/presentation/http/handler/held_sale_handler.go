package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/sellweave/pos-api/internal/application/service"
	"github.com/sellweave/pos-api/internal/presentation/http/dto/response"
)

// HeldSaleHandler handles held sale HTTP requests
type HeldSaleHandler struct {
	heldSaleService *service.HeldSaleService
}

// NewHeldSaleHandler creates a new held sale handler
func NewHeldSaleHandler(heldSaleService *service.HeldSaleService) *HeldSaleHandler {
	return &HeldSaleHandler{heldSaleService: heldSaleService}
}

// Hold handles parking a cart for later recall
func (h *HeldSaleHandler) Hold(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		TerminalID string          `json:"terminal_id" binding:"required"`
		Cart       json.RawMessage `json:"cart" binding:"required"`
		Notes      string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	hold, err := h.heldSaleService.Hold(c.Request.Context(), &service.HoldInput{
		TerminalID: req.TerminalID,
		UserID:     *userID,
		Cart:       req.Cart,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale held successfully", hold)
}

// ListActive handles listing the recallable holds for a terminal
func (h *HeldSaleHandler) ListActive(c *gin.Context) {
	terminalID := c.Query("terminal_id")

	holds, err := h.heldSaleService.ListActive(c.Request.Context(), terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Held sales retrieved successfully", holds)
}

// Recall handles retrieving a held cart and marking it recalled
func (h *HeldSaleHandler) Recall(c *gin.Context) {
	holdID := c.Param("hold_id")

	cart, err := h.heldSaleService.Recall(c.Request.Context(), holdID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Held sale recalled successfully", gin.H{
		"hold_id": holdID,
		"cart":    cart,
	})
}

// Delete handles permanently removing a hold
func (h *HeldSaleHandler) Delete(c *gin.Context) {
	holdID := c.Param("hold_id")

	if err := h.heldSaleService.Delete(c.Request.Context(), holdID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Held sale deleted successfully", nil)
}
