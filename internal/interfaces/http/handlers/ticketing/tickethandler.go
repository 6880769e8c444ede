// Package ticketing exposes the ticket lifecycle endpoints: gate check-in
// for staff and cancellation for buyers.
package ticketing

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gately/internal/application/ticketing/usecases"
	"gately/internal/interfaces/http/middleware"
	"gately/internal/shared/logger"
	"gately/internal/shared/utils"
)

type CheckInExecutor interface {
	Execute(ctx context.Context, cmd usecases.CheckInCommand) (*usecases.CheckInResult, error)
}

type CancelTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.CancelTicketCommand) (*usecases.CancelTicketResult, error)
}

type CheckInRequest struct {
	// Either the scanned payload plus signature, or a bare ticket ID.
	QRPayload   string `json:"qr_payload" validate:"required_without=TicketID"`
	QRSignature string `json:"qr_signature" validate:"required_with=QRPayload,omitempty,len=64"`
	TicketID    uint   `json:"ticket_id"`
}

type TicketHandler struct {
	checkInUC      CheckInExecutor
	cancelTicketUC CancelTicketExecutor
	logger         logger.Interface
}

func NewTicketHandler(checkInUC CheckInExecutor, cancelTicketUC CancelTicketExecutor) *TicketHandler {
	return &TicketHandler{
		checkInUC:      checkInUC,
		cancelTicketUC: cancelTicketUC,
		logger:         logger.NewLogger(),
	}
}

// CheckIn handles POST /staff/check-in
func (h *TicketHandler) CheckIn(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid check-in request body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.checkInUC.Execute(c.Request.Context(), usecases.CheckInCommand{
		QRPayload:     req.QRPayload,
		QRSignature:   req.QRSignature,
		TicketID:      req.TicketID,
		StaffTenantID: claims.TenantID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket checked in", result)
}

// CancelTicket handles POST /tickets/:id/cancel
func (h *TicketHandler) CancelTicket(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	result, err := h.cancelTicketUC.Execute(c.Request.Context(), usecases.CancelTicketCommand{
		TicketID:   uint(ticketID),
		BuyerEmail: claims.Email,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	msg := "Ticket cancelled"
	if result.RefundAmount > 0 {
		msg = "Ticket cancelled. Refunds are processed within 5-7 business days."
	}
	utils.SuccessResponse(c, http.StatusOK, msg, result)
}
