// Package usecases implements order queries for buyers and staff.
package usecases

import (
	"context"
	"time"

	"gately/internal/domain/order"
	"gately/internal/domain/ticketing"
	"gately/internal/shared/errors"
	"gately/internal/shared/logger"
)

type OrderItemView struct {
	TicketTypeID uint
	UnitPrice    int64
	Quantity     int
	Subtotal     int64
}

type TicketView struct {
	TicketID     uint
	TicketTypeID uint
	AttendeeName string
	Status       string
	QRPayload    string
	QRSignature  string
	CheckedInAt  *time.Time
}

type OrderView struct {
	OrderID        uint
	EventID        uint
	BuyerEmail     string
	BuyerName      string
	Total          int64
	DiscountAmount int64
	Currency       string
	Status         string
	LookupToken    string
	Items          []OrderItemView
	Tickets        []TicketView
	CreatedAt      time.Time
}

type GetOrderQuery struct {
	OrderID    uint
	BuyerEmail string
}

// GetOrderUseCase serves a buyer their own order with its tickets. The
// email match is the ownership check; a mismatch reads as not found so
// order IDs cannot be probed.
type GetOrderUseCase struct {
	orderRepo  order.Repository
	ticketRepo ticketing.Repository
	logger     logger.Interface
}

func NewGetOrderUseCase(orderRepo order.Repository, ticketRepo ticketing.Repository, logger logger.Interface) *GetOrderUseCase {
	return &GetOrderUseCase{
		orderRepo:  orderRepo,
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, query GetOrderQuery) (*OrderView, error) {
	if query.OrderID == 0 {
		return nil, errors.NewBadRequestError("order ID is required")
	}
	if query.BuyerEmail == "" {
		return nil, errors.NewBadRequestError("buyer email is required")
	}

	o, err := uc.orderRepo.FindByIDAndEmail(ctx, query.OrderID, query.BuyerEmail)
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

func buildOrderView(o *order.Order, tickets []*ticketing.Ticket) *OrderView {
	items := make([]OrderItemView, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemView{
			TicketTypeID: item.TicketTypeID(),
			UnitPrice:    item.UnitPrice().Amount(),
			Quantity:     item.Quantity(),
			Subtotal:     item.Subtotal().Amount(),
		})
	}

	ticketViews := make([]TicketView, 0, len(tickets))
	for _, t := range tickets {
		ticketViews = append(ticketViews, TicketView{
			TicketID:     t.ID(),
			TicketTypeID: t.TicketTypeID(),
			AttendeeName: t.AttendeeName(),
			Status:       t.Status().String(),
			QRPayload:    t.QRPayload(),
			QRSignature:  t.QRSignature(),
			CheckedInAt:  t.CheckedInAt(),
		})
	}

	return &OrderView{
		OrderID:        o.ID(),
		EventID:        o.EventID(),
		BuyerEmail:     o.BuyerEmail(),
		BuyerName:      o.BuyerName(),
		Total:          o.Total().Amount(),
		DiscountAmount: o.DiscountAmount(),
		Currency:       o.Total().Currency(),
		Status:         o.Status().String(),
		LookupToken:    o.LookupToken(),
		Items:          items,
		Tickets:        ticketViews,
		CreatedAt:      o.CreatedAt(),
	}
}
