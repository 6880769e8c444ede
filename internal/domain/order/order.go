// Package order models the purchase record produced by one checkout: the
// order itself plus one immutable line item per distinct ticket type.
package order

import (
	"fmt"
	"time"

	vo "gately/internal/domain/order/valueobjects"
	"gately/internal/domain/shared/money"
	"gately/internal/shared/biztime"
	"gately/internal/shared/id"
)

type Order struct {
	id               uint
	tenantID         uint
	eventID          uint
	buyerEmail       string
	buyerName        string
	total            money.Money
	discountAmount   int64
	status           vo.OrderStatus
	paymentReference *string
	lookupToken      string
	items            []*Item
	metadata         map[string]interface{}

	createdAt time.Time
	updatedAt time.Time
}

// NewOrder creates an order in pending status with a fresh public lookup
// token. Items are appended via AddItem before persistence.
func NewOrder(tenantID, eventID uint, buyerEmail, buyerName string, total money.Money, discountAmount int64) (*Order, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if eventID == 0 {
		return nil, fmt.Errorf("event ID is required")
	}
	if buyerEmail == "" {
		return nil, fmt.Errorf("buyer email is required")
	}
	if buyerName == "" {
		return nil, fmt.Errorf("buyer name is required")
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("order total must not be negative")
	}
	if discountAmount < 0 {
		return nil, fmt.Errorf("discount amount must not be negative")
	}

	token, err := id.NewOrderLookupToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate lookup token: %w", err)
	}

	now := biztime.NowUTC()
	return &Order{
		tenantID:       tenantID,
		eventID:        eventID,
		buyerEmail:     buyerEmail,
		buyerName:      buyerName,
		total:          total,
		discountAmount: discountAmount,
		status:         vo.OrderStatusPending,
		lookupToken:    token,
		metadata:       make(map[string]interface{}),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// AddItem appends a line item. Only valid before the order is persisted.
func (o *Order) AddItem(ticketTypeID uint, unitPrice money.Money, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	o.items = append(o.items, &Item{
		ticketTypeID: ticketTypeID,
		unitPrice:    unitPrice,
		quantity:     quantity,
		subtotal:     unitPrice.MulQuantity(quantity),
	})
	return nil
}

// MarkCompleted transitions pending -> completed, recording the payment
// reference when one exists.
func (o *Order) MarkCompleted(paymentReference string) error {
	if o.status == vo.OrderStatusCompleted {
		return nil
	}
	if o.status != vo.OrderStatusPending {
		return fmt.Errorf("cannot complete order with status %s", o.status)
	}
	o.status = vo.OrderStatusCompleted
	if paymentReference != "" {
		o.paymentReference = &paymentReference
	}
	o.updatedAt = biztime.NowUTC()
	return nil
}

// MarkCancelled transitions the order to cancelled. Callers guarantee every
// child ticket is cancelled first; the aggregate only guards the status
// machine.
func (o *Order) MarkCancelled() error {
	if o.status == vo.OrderStatusCancelled {
		return nil
	}
	o.status = vo.OrderStatusCancelled
	o.updatedAt = biztime.NowUTC()
	return nil
}

// TicketQuantity returns the total number of tickets this order expands to.
func (o *Order) TicketQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.quantity
	}
	return total
}

func (o *Order) ID() uint                  { return o.id }
func (o *Order) TenantID() uint            { return o.tenantID }
func (o *Order) EventID() uint             { return o.eventID }
func (o *Order) BuyerEmail() string        { return o.buyerEmail }
func (o *Order) BuyerName() string         { return o.buyerName }
func (o *Order) Total() money.Money        { return o.total }
func (o *Order) DiscountAmount() int64     { return o.discountAmount }
func (o *Order) Status() vo.OrderStatus    { return o.status }
func (o *Order) PaymentReference() *string { return o.paymentReference }
func (o *Order) LookupToken() string       { return o.lookupToken }
func (o *Order) Items() []*Item            { return o.items }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }

func (o *Order) Metadata() map[string]interface{} {
	return o.metadata
}

// SetMetadata records a metadata key-value pair.
func (o *Order) SetMetadata(key string, value interface{}) {
	if o.metadata == nil {
		o.metadata = make(map[string]interface{})
	}
	o.metadata[key] = value
	o.updatedAt = biztime.NowUTC()
}

// SetID sets the order ID after persistence.
func (o *Order) SetID(orderID uint) {
	o.id = orderID
}

// Item is one immutable order line: a ticket type, the unit price at time
// of purchase, and the quantity bought.
type Item struct {
	id           uint
	orderID      uint
	ticketTypeID uint
	unitPrice    money.Money
	quantity     int
	subtotal     money.Money
}

func (i *Item) ID() uint               { return i.id }
func (i *Item) OrderID() uint          { return i.orderID }
func (i *Item) TicketTypeID() uint     { return i.ticketTypeID }
func (i *Item) UnitPrice() money.Money { return i.unitPrice }
func (i *Item) Quantity() int          { return i.quantity }
func (i *Item) Subtotal() money.Money  { return i.subtotal }

// SetID sets the item ID after persistence.
func (i *Item) SetID(itemID uint) {
	i.id = itemID
}

// OrderReconstructParams carries a persisted order's state.
type OrderReconstructParams struct {
	ID               uint
	TenantID         uint
	EventID          uint
	BuyerEmail       string
	BuyerName        string
	Total            money.Money
	DiscountAmount   int64
	Status           vo.OrderStatus
	PaymentReference *string
	LookupToken      string
	Items            []*Item
	Metadata         map[string]interface{}
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructOrder recreates an order from persistence.
func ReconstructOrder(p OrderReconstructParams) *Order {
	metadata := p.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &Order{
		id:               p.ID,
		tenantID:         p.TenantID,
		eventID:          p.EventID,
		buyerEmail:       p.BuyerEmail,
		buyerName:        p.BuyerName,
		total:            p.Total,
		discountAmount:   p.DiscountAmount,
		status:           p.Status,
		paymentReference: p.PaymentReference,
		lookupToken:      p.LookupToken,
		items:            p.Items,
		metadata:         metadata,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}

// ReconstructItem recreates a line item from persistence.
func ReconstructItem(itemID, orderID, ticketTypeID uint, unitPrice money.Money, quantity int, subtotal money.Money) *Item {
	return &Item{
		id:           itemID,
		orderID:      orderID,
		ticketTypeID: ticketTypeID,
		unitPrice:    unitPrice,
		quantity:     quantity,
		subtotal:     subtotal,
	}
}
