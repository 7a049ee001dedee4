package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/application/service"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/sellweave/pos-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// RegisterHandler handles register session HTTP requests
type RegisterHandler struct {
	registerService *service.RegisterService
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(registerService *service.RegisterService) *RegisterHandler {
	return &RegisterHandler{registerService: registerService}
}

// Open handles opening a register session for a terminal
func (h *RegisterHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		TerminalID     string          `json:"terminal_id" binding:"required"`
		OpeningBalance decimal.Decimal `json:"opening_balance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.registerService.OpenRegister(c.Request.Context(), &service.OpenRegisterInput{
		TerminalID:     req.TerminalID,
		UserID:         *userID,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Register opened successfully", session)
}

// Get handles getting a single register session
func (h *RegisterHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.registerService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register session retrieved successfully", session)
}

// Current handles looking up the open session for a terminal
func (h *RegisterHandler) Current(c *gin.Context) {
	terminalID := c.Query("terminal_id")
	if terminalID == "" {
		response.BadRequest(c, "terminal_id query parameter is required")
		return
	}

	session, err := h.registerService.CurrentSession(c.Request.Context(), terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Open register session retrieved successfully", session)
}

// RecordMovement handles appending a cash in/out entry to a session
func (h *RegisterHandler) RecordMovement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req struct {
		Type   enum.MovementType `json:"type"`
		Amount decimal.Decimal   `json:"amount"`
		Reason string            `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	movement, err := h.registerService.RecordMovement(c.Request.Context(), &service.RecordMovementInput{
		SessionID: id,
		Type:      req.Type,
		Amount:    req.Amount,
		Reason:    req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash movement recorded successfully", movement)
}

// ListMovements handles listing a session's cash ledger
func (h *RegisterHandler) ListMovements(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	movements, err := h.registerService.ListMovements(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash movements retrieved successfully", movements)
}

// Close handles closing a register session with the counted cash
func (h *RegisterHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req struct {
		ActualCash  decimal.Decimal  `json:"actual_cash"`
		OtherAmount *decimal.Decimal `json:"other_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var other decimal.NullDecimal
	if req.OtherAmount != nil {
		other = decimal.NewNullDecimal(*req.OtherAmount)
	}

	session, err := h.registerService.CloseRegister(c.Request.Context(), &service.CloseRegisterInput{
		SessionID:   id,
		ActualCash:  req.ActualCash,
		OtherAmount: other,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	var variance *string
	if v := session.CashVariance(); v != nil {
		s := v.StringFixed(2)
		variance = &s
	}
	response.OK(c, "Register closed successfully", gin.H{
		"session":       session,
		"cash_variance": variance,
	})
}
