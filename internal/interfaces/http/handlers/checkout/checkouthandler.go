// Package checkout exposes the purchase pipeline endpoints.
package checkout

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gately/internal/application/checkout/usecases"
	"gately/internal/interfaces/http/middleware"
	"gately/internal/shared/logger"
	"gately/internal/shared/utils"
)

type CheckoutExecutor interface {
	Execute(ctx context.Context, cmd usecases.CheckoutCommand) (*usecases.CheckoutResult, error)
}

type ValidateDiscountExecutor interface {
	Execute(ctx context.Context, cmd usecases.ValidateDiscountCommand) (*usecases.ValidateDiscountResult, error)
}

type CheckoutHandler struct {
	checkoutUC         CheckoutExecutor
	validateDiscountUC ValidateDiscountExecutor
	logger             logger.Interface
}

func NewCheckoutHandler(checkoutUC CheckoutExecutor, validateDiscountUC ValidateDiscountExecutor) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC:         checkoutUC,
		validateDiscountUC: validateDiscountUC,
		logger:             logger.NewLogger(),
	}
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid checkout request body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.BuyerEmail == "" {
		if claims := middleware.GetClaims(c); claims != nil {
			req.BuyerEmail = claims.Email
		}
	}

	result, err := h.checkoutUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Order placed successfully")
}

// ValidateDiscount handles POST /checkout/validate-discount
func (h *CheckoutHandler) ValidateDiscount(c *gin.Context) {
	var req ValidateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.validateDiscountUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
