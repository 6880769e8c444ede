package usecases

import (
	"context"
	"strings"

	"gately/internal/domain/order"
	"gately/internal/domain/ticketing"
	"gately/internal/shared/errors"
	"gately/internal/shared/logger"
)

type StaffSearchOrderQuery struct {
	TenantID uint
	// Code is whatever the buyer presents at the desk: a numeric order ID
	// or the public lookup token from their confirmation email.
	Code string
}

// StaffSearchOrderUseCase resolves an order for venue staff, scoped to
// their tenant, with tickets included for manual check-in.
type StaffSearchOrderUseCase struct {
	orderRepo  order.Repository
	ticketRepo ticketing.Repository
	logger     logger.Interface
}

func NewStaffSearchOrderUseCase(orderRepo order.Repository, ticketRepo ticketing.Repository, logger logger.Interface) *StaffSearchOrderUseCase {
	return &StaffSearchOrderUseCase{
		orderRepo:  orderRepo,
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *StaffSearchOrderUseCase) Execute(ctx context.Context, query StaffSearchOrderQuery) (*OrderView, error) {
	if query.TenantID == 0 {
		return nil, errors.NewBadRequestError("tenant ID is required")
	}
	code := strings.TrimSpace(query.Code)
	if code == "" {
		return nil, errors.NewBadRequestError("search code is required")
	}

	o, err := uc.orderRepo.FindByTenantAndCode(ctx, query.TenantID, code)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, errors.NewNotFoundError("order not found")
	}

	tickets, err := uc.ticketRepo.FindByOrderID(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	return buildOrderView(o, tickets), nil
}
