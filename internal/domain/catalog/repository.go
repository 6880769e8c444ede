package catalog

import (
	"context"
	"errors"
)

// ErrInsufficientInventory is returned by Reserve when the conditional
// stock update matches no row: someone else took the remaining units. It is
// a normal sales outcome, not a persistence failure.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// EventRepository is the read side of the event catalog.
type EventRepository interface {
	FindByID(ctx context.Context, id uint) (*Event, error)
	FindBySlug(ctx context.Context, slug string) (*Event, error)
	ListPublic(ctx context.Context) ([]*Event, error)
	Create(ctx context.Context, event *Event) error
}

// TicketTypeRepository reads ticket types and doubles as the inventory
// ledger: Reserve and Release are the only writers of quantity_sold
// anywhere in the system.
type TicketTypeRepository interface {
	FindByID(ctx context.Context, id uint) (*TicketType, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*TicketType, error)
	FindByEventID(ctx context.Context, eventID uint) ([]*TicketType, error)
	Create(ctx context.Context, tt *TicketType) error

	// Reserve claims quantity units in one atomic conditional update
	// (quantity_sold = quantity_sold + q WHERE quantity_sold + q <=
	// quantity_total). Returns ErrInsufficientInventory when no row matched.
	Reserve(ctx context.Context, ticketTypeID uint, quantity int) error

	// Release returns quantity units to the pool on cancellation. The
	// update is clamped so quantity_sold never goes below zero.
	Release(ctx context.Context, ticketTypeID uint, quantity int) error
}
