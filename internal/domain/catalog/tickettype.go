package catalog

import (
	"fmt"
	"time"

	vo "gately/internal/domain/catalog/valueobjects"
	"gately/internal/domain/shared/money"
	"gately/internal/shared/biztime"
)

// TicketType is a purchasable class of admission with its own price and
// stock pool. quantitySold is owned by the inventory ledger and only moves
// through its atomic conditional updates; the aggregate never mutates it.
type TicketType struct {
	id            uint
	eventID       uint
	name          string
	description   string
	price         money.Money
	quantityTotal int
	quantitySold  int
	salesStart    time.Time
	salesEnd      time.Time
	status        vo.TicketTypeStatus

	createdAt time.Time
	updatedAt time.Time
}

// NewTicketType validates and creates a ticket type.
func NewTicketType(eventID uint, name string, price money.Money, quantityTotal int, salesStart, salesEnd time.Time) (*TicketType, error) {
	if eventID == 0 {
		return nil, fmt.Errorf("event ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("ticket type name is required")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	if quantityTotal <= 0 {
		return nil, fmt.Errorf("quantity total must be positive")
	}
	if !salesEnd.After(salesStart) {
		return nil, fmt.Errorf("sales end must be after sales start")
	}

	now := biztime.NowUTC()
	return &TicketType{
		eventID:       eventID,
		name:          name,
		price:         price,
		quantityTotal: quantityTotal,
		salesStart:    salesStart,
		salesEnd:      salesEnd,
		status:        vo.TicketTypeStatusActive,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Available returns the remaining sellable units.
func (t *TicketType) Available() int {
	return t.quantityTotal - t.quantitySold
}

// IsOnSale reports whether the type can be purchased at the given instant:
// active status and inside the sales window.
func (t *TicketType) IsOnSale(now time.Time) bool {
	if t.status != vo.TicketTypeStatusActive {
		return false
	}
	return !t.salesStart.After(now) && !t.salesEnd.Before(now)
}

func (t *TicketType) ID() uint                    { return t.id }
func (t *TicketType) EventID() uint               { return t.eventID }
func (t *TicketType) Name() string                { return t.name }
func (t *TicketType) Description() string         { return t.description }
func (t *TicketType) Price() money.Money          { return t.price }
func (t *TicketType) QuantityTotal() int          { return t.quantityTotal }
func (t *TicketType) QuantitySold() int           { return t.quantitySold }
func (t *TicketType) SalesStart() time.Time       { return t.salesStart }
func (t *TicketType) SalesEnd() time.Time         { return t.salesEnd }
func (t *TicketType) Status() vo.TicketTypeStatus { return t.status }
func (t *TicketType) CreatedAt() time.Time        { return t.createdAt }
func (t *TicketType) UpdatedAt() time.Time        { return t.updatedAt }

// SetID sets the ticket type ID after persistence.
func (t *TicketType) SetID(id uint) {
	t.id = id
}

// TicketTypeReconstructParams carries a persisted ticket type's state.
type TicketTypeReconstructParams struct {
	ID            uint
	EventID       uint
	Name          string
	Description   string
	Price         money.Money
	QuantityTotal int
	QuantitySold  int
	SalesStart    time.Time
	SalesEnd      time.Time
	Status        vo.TicketTypeStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReconstructTicketType recreates a ticket type from persistence.
func ReconstructTicketType(p TicketTypeReconstructParams) *TicketType {
	return &TicketType{
		id:            p.ID,
		eventID:       p.EventID,
		name:          p.Name,
		description:   p.Description,
		price:         p.Price,
		quantityTotal: p.QuantityTotal,
		quantitySold:  p.QuantitySold,
		salesStart:    p.SalesStart,
		salesEnd:      p.SalesEnd,
		status:        p.Status,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}
