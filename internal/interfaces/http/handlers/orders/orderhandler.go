// Package orders exposes buyer order history and staff order search.
package orders

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gately/internal/application/orders/usecases"
	"gately/internal/interfaces/http/middleware"
	"gately/internal/shared/logger"
	"gately/internal/shared/utils"
)

type GetOrderExecutor interface {
	Execute(ctx context.Context, query usecases.GetOrderQuery) (*usecases.OrderView, error)
}

type ListBuyerOrdersExecutor interface {
	Execute(ctx context.Context, buyerEmail string) (*usecases.ListBuyerOrdersResult, error)
}

type StaffSearchOrderExecutor interface {
	Execute(ctx context.Context, query usecases.StaffSearchOrderQuery) (*usecases.OrderView, error)
}

type OrderHandler struct {
	getOrderUC    GetOrderExecutor
	listOrdersUC  ListBuyerOrdersExecutor
	staffSearchUC StaffSearchOrderExecutor
	logger        logger.Interface
}

func NewOrderHandler(
	getOrderUC GetOrderExecutor,
	listOrdersUC ListBuyerOrdersExecutor,
	staffSearchUC StaffSearchOrderExecutor,
) *OrderHandler {
	return &OrderHandler{
		getOrderUC:    getOrderUC,
		listOrdersUC:  listOrdersUC,
		staffSearchUC: staffSearchUC,
		logger:        logger.NewLogger(),
	}
}

// GetOrder handles GET /orders/:id. The buyer identity comes from the
// verified token, never from the request.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid order ID")
		return
	}

	result, err := h.getOrderUC.Execute(c.Request.Context(), usecases.GetOrderQuery{
		OrderID:    uint(orderID),
		BuyerEmail: claims.Email,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListMyOrders handles GET /orders
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.listOrdersUC.Execute(c.Request.Context(), claims.Email)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Orders)
}

// StaffSearchOrder handles GET /staff/orders/:code
func (h *OrderHandler) StaffSearchOrder(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.staffSearchUC.Execute(c.Request.Context(), usecases.StaffSearchOrderQuery{
		TenantID: claims.TenantID,
		Code:     c.Param("code"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
